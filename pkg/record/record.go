// Package record implements the on-disk directory and file records of the
// v10x family: the per-directory index entry (two shapes, v103/v104 vs.
// v105's padded variant), the file index entry, and the directory content
// block (optional name plus its file records) that sits at the offset a
// directory record points to.
package record

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bstring"
	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
)

// Dir is a directory index entry: which files it holds and where its
// content block (name + file records) lives.
type Dir struct {
	NameHash  hash.Hash
	FileCount uint32
	Offset    uint32
}

// ReadDir reads a v103/v104-shaped directory record (16 bytes, no padding).
func ReadDir(r io.Reader) (Dir, error) {
	h, err := hash.Read(r)
	if err != nil {
		return Dir{}, err
	}
	count, err := binary.ReadUint32(r)
	if err != nil {
		return Dir{}, err
	}
	offset, err := binary.ReadUint32(r)
	if err != nil {
		return Dir{}, err
	}
	return Dir{NameHash: h, FileCount: count, Offset: offset}, nil
}

// WriteDir writes a v103/v104-shaped directory record.
func WriteDir(w io.Writer, d Dir) error {
	if err := hash.Write(w, d.NameHash); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, d.FileCount); err != nil {
		return err
	}
	return binary.WriteUint32(w, d.Offset)
}

// ReadDirPadded reads a v105-shaped directory record: the same three
// fields, with a zero uint32 before and after the offset field.
func ReadDirPadded(r io.Reader) (Dir, error) {
	h, err := hash.Read(r)
	if err != nil {
		return Dir{}, err
	}
	count, err := binary.ReadUint32(r)
	if err != nil {
		return Dir{}, err
	}
	if _, err := binary.ReadUint32(r); err != nil { // padding
		return Dir{}, err
	}
	offset, err := binary.ReadUint32(r)
	if err != nil {
		return Dir{}, err
	}
	if _, err := binary.ReadUint32(r); err != nil { // padding
		return Dir{}, err
	}
	return Dir{NameHash: h, FileCount: count, Offset: offset}, nil
}

// WriteDirPadded writes a v105-shaped directory record.
func WriteDirPadded(w io.Writer, d Dir) error {
	if err := hash.Write(w, d.NameHash); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, d.FileCount); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, 0); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, d.Offset); err != nil {
		return err
	}
	return binary.WriteUint32(w, 0)
}

// File is a file index entry. Size carries the compression-inversion bit
// (consts.CompressionInvertBit) in addition to the byte count; use
// RealSize/IsCompressionBitSet to interpret it.
type File struct {
	NameHash hash.Hash
	Size     uint32
	Offset   uint32
}

// IsCompressionBitSet reports whether this file's compression state is
// inverted relative to the archive's CompressedArchive default.
func (f File) IsCompressionBitSet() bool {
	return f.Size&consts.CompressionInvertBit != 0
}

// RealSize returns the byte count with the compression-inversion and
// reserved bits stripped.
func (f File) RealSize() uint32 {
	return f.Size & consts.SizeMask
}

// ReadFile reads a file record (hash + size + offset, 16 bytes).
func ReadFile(r io.Reader) (File, error) {
	h, err := hash.Read(r)
	if err != nil {
		return File{}, err
	}
	size, err := binary.ReadUint32(r)
	if err != nil {
		return File{}, err
	}
	offset, err := binary.ReadUint32(r)
	if err != nil {
		return File{}, err
	}
	return File{NameHash: h, Size: size, Offset: offset}, nil
}

// WriteFile writes a file record.
func WriteFile(w io.Writer, f File) error {
	if err := hash.Write(w, f.NameHash); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, f.Size); err != nil {
		return err
	}
	return binary.WriteUint32(w, f.Offset)
}

// DirContent is the block a directory record's offset points to: an
// optional BZString directory name followed by that directory's file
// records.
type DirContent struct {
	Name  *string
	Files []File
}

// ReadDirContent reads a DirContent block. hasName must match the
// archive's IncludeDirectoryNames flag; fileCount is the directory's
// FileCount from its Dir record.
func ReadDirContent(r io.Reader, hasName bool, fileCount uint32) (DirContent, error) {
	var dc DirContent
	if hasName {
		name, err := bstring.ReadBZString(r)
		if err != nil {
			return DirContent{}, err
		}
		dc.Name = &name
	}
	dc.Files = make([]File, fileCount)
	for i := range dc.Files {
		f, err := ReadFile(r)
		if err != nil {
			return DirContent{}, err
		}
		dc.Files[i] = f
	}
	return dc, nil
}

// WriteDirContent writes a DirContent block.
func WriteDirContent(w io.Writer, dc DirContent) error {
	if dc.Name != nil {
		if err := bstring.WriteBZString(w, *dc.Name); err != nil {
			return err
		}
	}
	for _, f := range dc.Files {
		if err := WriteFile(w, f); err != nil {
			return err
		}
	}
	return nil
}

// SizeDirContent returns the on-disk size of dc.
func SizeDirContent(dc DirContent) int {
	n := 0
	if dc.Name != nil {
		n += bstring.SizeBZString(*dc.Name)
	}
	return n + len(dc.Files)*consts.FileRecordSize
}
