// Package bstring implements the three length-prefixed string encodings
// used throughout BSA containers: BString (length-prefixed, file names in
// the v001 name blob use ZString instead), ZString (null-terminated, no
// length prefix), and BZString (length-prefixed where the length includes
// the trailing null, used for v10x directory names).
package bstring

import (
	"io"
	"unicode/utf8"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bsaerr"
)

// MaxBStringLen is the longest string a BString can hold; its length is
// stored in a single byte.
const MaxBStringLen = 255

// MaxBZStringLen is the longest string a BZString can hold; its length byte
// counts the trailing null, so one fewer character than BString fits.
const MaxBZStringLen = 254

// NewBString validates s and wraps it for encoding as a BString.
func NewBString(s string) (string, error) {
	if len(s) > MaxBStringLen {
		return "", &bsaerr.StringTooLongError{Value: s, MaxLen: MaxBStringLen}
	}
	return s, nil
}

// NewBZString validates s and wraps it for encoding as a BZString.
func NewBZString(s string) (string, error) {
	if len(s) > MaxBZStringLen {
		return "", &bsaerr.StringTooLongError{Value: s, MaxLen: MaxBZStringLen}
	}
	return s, nil
}

// ReadBString reads a one-byte length prefix followed by that many bytes.
// BStrings in BSA archives are not null-terminated despite the trailing
// null some writers emit; we read exactly length bytes.
func ReadBString(r io.Reader) (string, error) {
	n, err := binary.ReadByte(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return decodeUTF8(buf)
}

// WriteBString writes s as a one-byte length prefix followed by the bytes of
// s, with no trailing null.
func WriteBString(w io.Writer, s string) error {
	if len(s) > MaxBStringLen {
		return &bsaerr.StringTooLongError{Value: s, MaxLen: MaxBStringLen}
	}
	if err := binary.WriteByte(w, byte(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// SizeBString returns the on-disk size of s encoded as a BString: the
// length byte and the characters.
func SizeBString(s string) int {
	return len(s) + 1
}

// ReadZString reads bytes until a null terminator, which is not included in
// the returned string.
func ReadZString(r io.Reader) (string, error) {
	var buf []byte
	for {
		b, err := binary.ReadByte(r)
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return decodeUTF8(buf)
}

// WriteZString writes s followed by a null terminator.
func WriteZString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	return binary.WriteByte(w, 0)
}

// SizeZString returns the on-disk size of s encoded as a ZString: the
// characters plus the trailing null.
func SizeZString(s string) int {
	return len(s) + 1
}

// ReadBZString reads a one-byte length prefix (which counts the trailing
// null) followed by length-1 characters and a null byte.
func ReadBZString(r io.Reader) (string, error) {
	n, err := binary.ReadByte(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", &bsaerr.CorruptError{Where: "bzstring length", Err: io.ErrUnexpectedEOF}
	}
	buf := make([]byte, n-1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	if _, err := binary.ReadByte(r); err != nil { // trailing null
		return "", err
	}
	return decodeUTF8(buf)
}

// WriteBZString writes s with a one-byte length prefix (len(s)+1, to count
// the trailing null), the characters, and a null byte.
func WriteBZString(w io.Writer, s string) error {
	if len(s) > MaxBZStringLen {
		return &bsaerr.StringTooLongError{Value: s, MaxLen: MaxBZStringLen}
	}
	if err := binary.WriteByte(w, byte(len(s)+1)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	return binary.WriteByte(w, 0)
}

// SizeBZString returns the on-disk size of s encoded as a BZString: the
// length byte, the characters, and the trailing null.
func SizeBZString(s string) int {
	return len(s) + 2
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", &bsaerr.InvalidUTF8Error{Err: io.ErrUnexpectedEOF}
	}
	return string(b), nil
}
