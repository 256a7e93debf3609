// Package header implements the two fixed-layout archive headers: the
// 8-byte v001 header and the 28-byte v10x header struct shared by
// v103/v104/v105 (which starts 8 bytes into the file, after the magic
// number and version integer, and ends at byte 36).
package header

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
)

// ArchiveFlag is the archive-wide bit flag set from the v10x header. Not
// every bit applies to every profile; profile packages interpret the bits
// they care about and ignore the rest.
type ArchiveFlag uint32

const (
	IncludeDirectoryNames    ArchiveFlag = 0x1
	IncludeFileNames         ArchiveFlag = 0x2
	CompressedArchive        ArchiveFlag = 0x4
	RetainDirectoryNames     ArchiveFlag = 0x8
	RetainFileNames          ArchiveFlag = 0x10
	RetainFileNameOffsets    ArchiveFlag = 0x20
	Xbox360Archive           ArchiveFlag = 0x40
	RetainStringsDuringStart ArchiveFlag = 0x80
	EmbedFileNames           ArchiveFlag = 0x100
	XMemCodec                ArchiveFlag = 0x200
)

// Has reports whether flag is set in f.
func (f ArchiveFlag) Has(flag ArchiveFlag) bool {
	return f&flag != 0
}

// FileFlag records which content categories (meshes, textures, ...) an
// archive claims to hold. It is informational; bsa-kit does not act on it.
type FileFlag uint16

const (
	FileFlagMeshes        FileFlag = 0x1
	FileFlagTextures      FileFlag = 0x2
	FileFlagMenus         FileFlag = 0x4
	FileFlagSounds        FileFlag = 0x8
	FileFlagVoices        FileFlag = 0x10
	FileFlagShaders       FileFlag = 0x20
	FileFlagTrees         FileFlag = 0x40
	FileFlagFonts         FileFlag = 0x80
	FileFlagMiscellaneous FileFlag = 0x100
)

// V001 is the flat-file header used by Morrowind archives: a hash-table
// offset and the total file count, immediately following the magic number.
type V001 struct {
	OffsetHashTable uint32
	FileCount       uint32
}

// SizeV001 is the on-disk size of a V001 header.
const SizeV001 = 8

func ReadV001(r io.Reader) (V001, error) {
	offset, err := binary.ReadUint32(r)
	if err != nil {
		return V001{}, err
	}
	count, err := binary.ReadUint32(r)
	if err != nil {
		return V001{}, err
	}
	return V001{OffsetHashTable: offset, FileCount: count}, nil
}

func WriteV001(w io.Writer, h V001) error {
	if err := binary.WriteUint32(w, h.OffsetHashTable); err != nil {
		return err
	}
	return binary.WriteUint32(w, h.FileCount)
}

// V10X is the header struct shared by v103, v104, and v105 archives. On
// disk it is preceded by a 4-byte magic number and a 4-byte version
// integer, so the first directory record begins 36 bytes into the file.
type V10X struct {
	// Offset is the absolute offset of the first directory record — the
	// size of the magic number, version integer, and this header combined;
	// well-formed archives always set it to 36.
	Offset                 uint32
	ArchiveFlags           ArchiveFlag
	DirCount               uint32
	FileCount              uint32
	TotalDirNameLength     uint32
	TotalFileNameLength    uint32
	FileFlags              FileFlag
	Padding                uint16
}

// SizeV10X is the on-disk size of the V10X struct itself — six uint32
// fields plus two uint16 fields — not counting the 4-byte magic number or
// 4-byte version integer that precede it on disk.
const SizeV10X = 28

// Has reports whether flag is set in the header's archive flags.
func (h V10X) Has(flag ArchiveFlag) bool {
	return h.ArchiveFlags.Has(flag)
}

// EffectiveTotalDirNameLength adds back the length byte each directory name
// contributes, which TotalDirNameLength itself does not count.
func (h V10X) EffectiveTotalDirNameLength() uint32 {
	return h.TotalDirNameLength + h.DirCount
}

func ReadV10X(r io.Reader) (V10X, error) {
	var h V10X
	var err error
	if h.Offset, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	var flags uint32
	if flags, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	h.ArchiveFlags = ArchiveFlag(flags)
	if h.DirCount, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	if h.FileCount, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	if h.TotalDirNameLength, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	if h.TotalFileNameLength, err = binary.ReadUint32(r); err != nil {
		return V10X{}, err
	}
	var fileFlags uint16
	if fileFlags, err = binary.ReadUint16(r); err != nil {
		return V10X{}, err
	}
	h.FileFlags = FileFlag(fileFlags)
	if h.Padding, err = binary.ReadUint16(r); err != nil {
		return V10X{}, err
	}
	return h, nil
}

func WriteV10X(w io.Writer, h V10X) error {
	if err := binary.WriteUint32(w, h.Offset); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, uint32(h.ArchiveFlags)); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, h.DirCount); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, h.FileCount); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, h.TotalDirNameLength); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, h.TotalFileNameLength); err != nil {
		return err
	}
	if err := binary.WriteUint16(w, uint16(h.FileFlags)); err != nil {
		return err
	}
	return binary.WriteUint16(w, h.Padding)
}
