// Package option holds the functional options accepted by Open and Write,
// collapsing what the teacher split across pkg/option and pkg/options into
// a single package since this module has no historical split to preserve.
package option

import (
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
)

// ExtractionProgress is the callback type WithExtractionProgress stores in
// OpenOptions. Open and Reader.Extract do not call it.
type ExtractionProgress func(name string, bytesTransferred, totalBytes int64)

// OpenOptions controls how Open reads an archive.
type OpenOptions struct {
	Logger             *logging.Logger
	ExtractionProgress ExtractionProgress
}

type OpenOption func(*OpenOptions)

// WithLogger attaches a logr-backed logger; readers default to a silent
// logger when none is supplied.
func WithLogger(logger *logging.Logger) OpenOption {
	return func(o *OpenOptions) {
		o.Logger = logger
	}
}

// WithExtractionProgress stores cb in OpenOptions.ExtractionProgress; no
// reader invokes it during Extract.
func WithExtractionProgress(cb ExtractionProgress) OpenOption {
	return func(o *OpenOptions) {
		o.ExtractionProgress = cb
	}
}
