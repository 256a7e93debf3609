// Package consts collects the fixed layout constants shared across BSA
// profiles: header sizes, on-disk field widths, and the bit masks that the
// compression-inversion and reserved bits occupy in a file record's size
// field.
package consts

const (
	// MagicSize is the width of the magic number at the start of every
	// archive.
	MagicSize = 4

	// VersionSize is the width of the v10x version integer that follows the
	// magic number.
	VersionSize = 4

	// HeaderSizeV10X is the size in bytes of the fixed v10x header struct
	// itself (header.SizeV10X), not counting the magic number or version
	// integer that precede it.
	HeaderSizeV10X = 28

	// OffsetAfterHeaderV10X is the absolute offset of the first directory
	// record: magic + version + header struct = 4 + 4 + 28 = 36.
	OffsetAfterHeaderV10X = MagicSize + VersionSize + HeaderSizeV10X

	// DirRecordSizeV103 is the size of a v103/v104 directory record.
	DirRecordSizeV103 = 16

	// DirRecordSizeV105 is the size of a v105 directory record, which adds
	// an 8-byte padding field (4 before the offset, 4 after) absent from
	// v103/v104.
	DirRecordSizeV105 = 24

	// FileRecordSize is the size of a file record (hash + size + offset) in
	// every v10x profile.
	FileRecordSize = 16

	// CompressionInvertBit flips whether a given file is compressed
	// relative to the archive's CompressedArchive default. It lives in bit
	// 30 of a file record's size field.
	CompressionInvertBit uint32 = 0x4000_0000

	// ReservedSizeBit is bit 31 of a file record's size field, reserved and
	// always cleared by writers.
	ReservedSizeBit uint32 = 0x8000_0000

	// SizeMask isolates the actual byte count from a file record's size
	// field once the high two bits are stripped.
	SizeMask uint32 = ^(CompressionInvertBit | ReservedSizeBit)
)
