// Package v105 is the Skyrim Special Edition archive profile: padded
// directory records (an extra reserved uint32 on either side of the
// offset field) and LZ4-frame compression instead of DEFLATE.
package v105

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/codec"
	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/record"
	"github.com/elderscrolls-tools/bsa-kit/pkg/version"
)

// Profile implements profile.Profile for v105 archives.
type Profile struct{}

func (Profile) Kind() version.Kind10X { return version.V105 }

func (Profile) DirRecordSize() int { return consts.DirRecordSizeV105 }

func (Profile) ReadDirRecord(r io.Reader) (record.Dir, error) { return record.ReadDirPadded(r) }

func (Profile) WriteDirRecord(w io.Writer, d record.Dir) error { return record.WriteDirPadded(w, d) }

func (Profile) EmbedsFileNames(flags header.ArchiveFlag) bool {
	return flags.Has(header.EmbedFileNames)
}

func (Profile) Codec() codec.Codec { return codec.LZ4Frame{} }
