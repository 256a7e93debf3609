// Package v103 is the Oblivion archive profile: DEFLATE compression,
// unpadded directory records, and no support for embedding file names in
// file payloads.
package v103

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/codec"
	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/record"
	"github.com/elderscrolls-tools/bsa-kit/pkg/version"
)

// Profile implements profile.Profile for v103 archives.
type Profile struct{}

func (Profile) Kind() version.Kind10X { return version.V103 }

func (Profile) DirRecordSize() int { return consts.DirRecordSizeV103 }

func (Profile) ReadDirRecord(r io.Reader) (record.Dir, error) { return record.ReadDir(r) }

func (Profile) WriteDirRecord(w io.Writer, d record.Dir) error { return record.WriteDir(w, d) }

func (Profile) EmbedsFileNames(header.ArchiveFlag) bool { return false }

func (Profile) Codec() codec.Codec { return codec.Deflate{} }
