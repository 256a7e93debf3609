// Package version identifies which BSA (or BA2) container a stream holds by
// reading its four-byte magic number and, for the v10x family, the version
// integer that follows it.
package version

import (
	"fmt"
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bsaerr"
)

// MagicNumber is the four-byte tag at the start of every archive.
type MagicNumber uint32

const (
	// MagicV001 is Morrowind's flat-file format magic, the bytes 00 00 01 00.
	MagicV001 MagicNumber = 0x00010000
	// MagicV10X is "BSA\0", shared by Oblivion through Skyrim SE.
	MagicV10X MagicNumber = 0x00415342
	// MagicBTDX is "BTDX", the BA2 container used by Fallout 4 onward.
	// bsa-kit recognizes it during Probe but does not implement it.
	MagicBTDX MagicNumber = 0x58445442
)

func (m MagicNumber) String() string {
	return fmt.Sprintf("%08x", uint32(m))
}

// Kind10X enumerates the three directory-based formats that share a magic
// number and differ only in their version integer.
type Kind10X uint32

const (
	V103 Kind10X = 103 // Oblivion
	V104 Kind10X = 104 // Fallout 3, Fallout New Vegas, Skyrim LE
	V105 Kind10X = 105 // Skyrim SE
)

func (k Kind10X) String() string {
	switch k {
	case V103:
		return "v103"
	case V104:
		return "v104"
	case V105:
		return "v105"
	default:
		return fmt.Sprintf("v10x(%d)", uint32(k))
	}
}

// Version is a tagged union over the archive formats bsa-kit can probe.
// Exactly one of the fields is meaningful, selected by Magic.
type Version struct {
	Magic   MagicNumber
	V10X    Kind10X // valid when Magic == MagicV10X
	BA2Ver  uint32  // valid when Magic == MagicBTDX
}

func (v Version) String() string {
	switch v.Magic {
	case MagicV001:
		return "v001"
	case MagicV10X:
		return v.V10X.String()
	case MagicBTDX:
		return fmt.Sprintf("BA2 v%03d", v.BA2Ver)
	default:
		return v.Magic.String()
	}
}

// Probe reads the magic number (and, for v10x archives, the version
// integer) from the start of r without consuming more than 8 bytes. It does
// not rewind r; callers that need to re-read the header should wrap r in a
// seekable stream and seek back to 0 themselves.
func Probe(r io.Reader) (Version, error) {
	raw, err := binary.ReadUint32(r)
	if err != nil {
		return Version{}, err
	}
	magic := MagicNumber(raw)
	switch magic {
	case MagicV001:
		return Version{Magic: magic}, nil
	case MagicV10X:
		n, err := binary.ReadUint32(r)
		if err != nil {
			return Version{}, err
		}
		switch n {
		case uint32(V103), uint32(V104), uint32(V105):
			return Version{Magic: magic, V10X: Kind10X(n)}, nil
		default:
			return Version{}, &bsaerr.UnknownVersionError{Version: n}
		}
	case MagicBTDX:
		n, err := binary.ReadUint32(r)
		if err != nil {
			return Version{}, err
		}
		return Version{Magic: magic, BA2Ver: n}, nil
	default:
		var tag [4]byte
		tag[0] = byte(raw)
		tag[1] = byte(raw >> 8)
		tag[2] = byte(raw >> 16)
		tag[3] = byte(raw >> 24)
		return Version{}, &bsaerr.UnknownMagicError{Magic: tag}
	}
}
