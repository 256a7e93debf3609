package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
)

func TestDefaultWriteOptionsAlwaysIncludeNameTables(t *testing.T) {
	var o WriteOptions
	flags := o.ArchiveFlags()
	assert.True(t, flags.Has(header.IncludeFileNames))
	assert.True(t, flags.Has(header.IncludeDirectoryNames))
	assert.False(t, flags.Has(header.CompressedArchive))
}

func TestWriteOptionsArchiveFlagsReflectEachOption(t *testing.T) {
	var o WriteOptions
	for _, opt := range []WriteOption{
		WithCompress(true),
		WithEmbedFileNames(true),
		WithRetainDirectoryNames(true),
		WithRetainFileNames(true),
	} {
		opt(&o)
	}
	flags := o.ArchiveFlags()
	assert.True(t, flags.Has(header.CompressedArchive))
	assert.True(t, flags.Has(header.EmbedFileNames))
	assert.True(t, flags.Has(header.RetainDirectoryNames))
	assert.True(t, flags.Has(header.RetainFileNames))
}

func TestWithLoggerSetsOpenOptionsLogger(t *testing.T) {
	var o OpenOptions
	assert.Nil(t, o.Logger)
	l := logging.DefaultLogger()
	WithLogger(l)(&o)
	assert.Same(t, l, o.Logger)
}

func TestWithExtractionProgressIsRegistered(t *testing.T) {
	var o OpenOptions
	var called bool
	WithExtractionProgress(func(name string, transferred, total int64) { called = true })(&o)
	require.NotNil(t, o.ExtractionProgress)
	o.ExtractionProgress("x", 1, 2)
	assert.True(t, called)
}
