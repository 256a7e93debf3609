// Package profile defines the small interface that lets pkg/v10x implement
// one reader and one writer skeleton shared by v103, v104, and v105, which
// differ only in their directory record shape, their archive flag
// semantics, and their compression codec.
package profile

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/codec"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/record"
	"github.com/elderscrolls-tools/bsa-kit/pkg/version"
)

// Profile captures everything pkg/v10x needs to know about one of the
// three directory-based archive formats to read and write it generically.
type Profile interface {
	// Kind identifies the version integer this profile writes and expects
	// to read back.
	Kind() version.Kind10X

	// DirRecordSize is the on-disk size of one directory record under this
	// profile: 16 bytes for v103/v104, 24 for v105's padded layout.
	DirRecordSize() int

	// ReadDirRecord reads one directory record at the reader's current
	// position.
	ReadDirRecord(r io.Reader) (record.Dir, error)

	// WriteDirRecord writes one directory record at the writer's current
	// position.
	WriteDirRecord(w io.Writer, d record.Dir) error

	// EmbedsFileNames reports whether, given the archive's flags, file
	// payloads are prefixed with a BString of their own path. Only v104
	// and v105 support this (EmbedFileNames bit); v103 never does.
	EmbedsFileNames(flags header.ArchiveFlag) bool

	// Codec returns the (de)compression codec this profile's compressed
	// files use.
	Codec() codec.Codec
}
