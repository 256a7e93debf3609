// Package v104 is the Fallout 3 / Fallout: New Vegas / Skyrim LE archive
// profile: same on-disk shapes as v103, plus the EmbedFileNames archive
// flag that prefixes each file payload with its own path.
package v104

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/codec"
	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/record"
	"github.com/elderscrolls-tools/bsa-kit/pkg/version"
)

// Profile implements profile.Profile for v104 archives.
type Profile struct{}

func (Profile) Kind() version.Kind10X { return version.V104 }

func (Profile) DirRecordSize() int { return consts.DirRecordSizeV103 }

func (Profile) ReadDirRecord(r io.Reader) (record.Dir, error) { return record.ReadDir(r) }

func (Profile) WriteDirRecord(w io.Writer, d record.Dir) error { return record.WriteDir(w, d) }

func (Profile) EmbedsFileNames(flags header.ArchiveFlag) bool {
	return flags.Has(header.EmbedFileNames)
}

func (Profile) Codec() codec.Codec { return codec.Deflate{} }
