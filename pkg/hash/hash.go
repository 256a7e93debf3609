// Package hash implements the two path-hashing schemes BSA archives use to
// index their contents: the Morrowind-era v001 scheme and the shared v10x
// scheme used by Oblivion through Skyrim SE.
package hash

import (
	"fmt"
	"strings"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"

	"io"
)

// Hash is the 64-bit (low, high) pair BSA directories and files are keyed
// by on disk. It orders by (Low, High) so directory listings sort the same
// way the on-disk hash table does.
type Hash struct {
	Low  uint32
	High uint32
}

// Less reports whether h sorts before o, ordering first by Low then High.
func (h Hash) Less(o Hash) bool {
	if h.Low != o.Low {
		return h.Low < o.Low
	}
	return h.High < o.High
}

func (h Hash) String() string {
	return fmt.Sprintf("%08x%08x", h.Low, h.High)
}

// Read reads a Hash as two consecutive little-endian uint32s (low, high).
func Read(r io.Reader) (Hash, error) {
	low, err := binary.ReadUint32(r)
	if err != nil {
		return Hash{}, err
	}
	high, err := binary.ReadUint32(r)
	if err != nil {
		return Hash{}, err
	}
	return Hash{Low: low, High: high}, nil
}

// Write writes h as two consecutive little-endian uint32s (low, high).
func Write(w io.Writer, h Hash) error {
	if err := binary.WriteUint32(w, h.Low); err != nil {
		return err
	}
	return binary.WriteUint32(w, h.High)
}

// Size is the on-disk size of a Hash.
const Size = 8

// sanitize lowercases a path and normalizes forward slashes to the
// backslash BSA paths are hashed with.
func sanitize(path string) string {
	return strings.ReplaceAll(strings.ToLower(path), "/", "\\")
}

// rotateRight32 rotates v right by b bits, b taken mod 32. This is the
// corrected form of the original reference implementation's rotate, which
// OR'd two same-direction shifts together and produced a value that was not
// actually a rotation for any b other than 0 or 16.
func rotateRight32(v uint32, b uint32) uint32 {
	b &= 31
	if b == 0 {
		return v
	}
	return (v >> b) | (v << (32 - b))
}

// V001 hashes a path using the Morrowind-era scheme: a forward xor-fold of
// the first half of the path into the high word, and a rotate-fold of the
// second half into the low word.
func V001(path string) Hash {
	p := sanitize(path)
	b := []byte(p)
	mid := len(b) >> 1

	var low uint32
	for i := mid; i < len(b); i++ {
		shift := uint32(i-mid) & 3 * 8
		temp := uint32(b[i]) << shift
		low = rotateRight32(low^temp, temp&0x1F)
	}

	var highBytes [4]byte
	for i := 0; i < mid; i++ {
		highBytes[i&3] ^= b[i]
	}
	high := uint32(highBytes[0]) | uint32(highBytes[1])<<8 | uint32(highBytes[2])<<16 | uint32(highBytes[3])<<24

	return Hash{Low: low, High: high}
}

// V10X hashes a path using the scheme shared by v103, v104, and v105: the
// path is split into a root and an extension, the extension contributes a
// handful of well-known bit flags to the low word, and an SDBM hash of the
// remaining characters folds into the high word.
func V10X(path string) Hash {
	p := sanitize(path)
	b := []byte(p)
	root, ext := splitRootExt(b)

	if len(root) == 0 {
		return Hash{}
	}

	var second byte
	if len(root) > 2 {
		second = root[len(root)-2]
	}
	low := uint32(root[len(root)-1]) |
		uint32(second)<<8 |
		uint32(len(root))<<16 |
		uint32(root[0])<<24
	low |= extFlag(string(ext))

	var high uint32
	if len(root) > 2 {
		high = sdbm(root[1 : len(root)-2])
	}
	high += sdbm(ext)

	return Hash{Low: low, High: high}
}

// splitRootExt finds the last '.' before any '\\' and splits path into
// (root, ext), with ext including the leading dot. If no extension is
// found, ext is empty and root is the whole path.
func splitRootExt(b []byte) (root, ext []byte) {
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case '\\':
			return b, nil
		case '.':
			return b[:i], b[i:]
		}
	}
	return b, nil
}

func extFlag(ext string) uint32 {
	switch ext {
	case ".nif":
		return 0x00008000
	case ".kf":
		return 0x00000080
	case ".dds":
		return 0x00008080
	case ".wav":
		return 0x80000000
	default:
		return 0
	}
}

// sdbm implements the SDBM string hash
// (http://www.partow.net/programming/hashfunctions/index.html#SDBMHashFunction).
func sdbm(b []byte) uint32 {
	var h uint32
	for _, c := range b {
		h = h*0x01003f + uint32(c)
	}
	return h
}
