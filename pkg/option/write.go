package option

import (
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
)

// WriteOptions controls how Write lays out a new archive.
type WriteOptions struct {
	Logger *logging.Logger

	// Compress, when true, asks the profile's default to be
	// CompressedArchive; individual files can still override this via
	// their own Compressed flag.
	Compress bool

	// EmbedFileNames sets the EmbedFileNames archive flag for v104/v105
	// targets; ignored for v001 and v103, which don't support it.
	EmbedFileNames bool

	// RetainDirectoryNames and RetainFileNames set the matching v10x
	// archive flags, which ask the game to keep name strings resident
	// rather than discarding them after a lookup.
	RetainDirectoryNames bool
	RetainFileNames      bool
}

type WriteOption func(*WriteOptions)

func WithWriteLogger(logger *logging.Logger) WriteOption {
	return func(o *WriteOptions) {
		o.Logger = logger
	}
}

func WithCompress(compress bool) WriteOption {
	return func(o *WriteOptions) {
		o.Compress = compress
	}
}

func WithEmbedFileNames(embed bool) WriteOption {
	return func(o *WriteOptions) {
		o.EmbedFileNames = embed
	}
}

func WithRetainDirectoryNames(retain bool) WriteOption {
	return func(o *WriteOptions) {
		o.RetainDirectoryNames = retain
	}
}

func WithRetainFileNames(retain bool) WriteOption {
	return func(o *WriteOptions) {
		o.RetainFileNames = retain
	}
}

// ArchiveFlags computes the v10x ArchiveFlag bits these options imply, on
// top of the IncludeFileNames/IncludeDirectoryNames bits every writer sets.
func (o WriteOptions) ArchiveFlags() header.ArchiveFlag {
	flags := header.IncludeFileNames | header.IncludeDirectoryNames
	if o.Compress {
		flags |= header.CompressedArchive
	}
	if o.EmbedFileNames {
		flags |= header.EmbedFileNames
	}
	if o.RetainDirectoryNames {
		flags |= header.RetainDirectoryNames
	}
	if o.RetainFileNames {
		flags |= header.RetainFileNames
	}
	return flags
}
