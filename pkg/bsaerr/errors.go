// Package bsaerr defines the typed error values returned by bsa-kit's
// readers, writers, and codecs.
package bsaerr

import "fmt"

// UnknownMagicError is returned when the first four bytes of a stream do not
// match any known BSA or BA2 magic number.
type UnknownMagicError struct {
	Magic [4]byte
}

func (e *UnknownMagicError) Error() string {
	return fmt.Sprintf("bsa: unknown magic number %q", e.Magic[:])
}

// UnknownVersionError is returned when the magic number is recognized as a
// BSA container but the version field that follows it has no known mapping.
type UnknownVersionError struct {
	Version uint32
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("bsa: unknown version %d", e.Version)
}

// UnsupportedVersionError is returned for formats that are recognized but
// deliberately not implemented, such as BA2.
type UnsupportedVersionError struct {
	Name string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("bsa: unsupported archive format %s", e.Name)
}

// CorruptError wraps a lower-level decoding failure with the field or
// section that was being parsed when it occurred.
type CorruptError struct {
	Where string
	Err   error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("bsa: corrupt archive at %s: %v", e.Where, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// HashCollisionError is returned by a writer when two distinct paths hash to
// the same value under the target profile's hashing scheme.
type HashCollisionError struct {
	A, B string
}

func (e *HashCollisionError) Error() string {
	return fmt.Sprintf("bsa: hash collision between %q and %q", e.A, e.B)
}

// StringTooLongError is returned when a path or name exceeds the maximum
// length a BString or BZString can encode, since their length is stored in
// a single byte.
type StringTooLongError struct {
	Value  string
	MaxLen int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("bsa: string %q exceeds max length %d", e.Value, e.MaxLen)
}

// CompressionNotSupportedError is returned when a caller asks a profile that
// has no compression support (v001) to compress a file.
type CompressionNotSupportedError struct {
	Version string
}

func (e *CompressionNotSupportedError) Error() string {
	return fmt.Sprintf("bsa: %s does not support compression", e.Version)
}

// InvalidUTF8Error is returned when a name or path read from an archive is
// not valid UTF-8.
type InvalidUTF8Error struct {
	Err error
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("bsa: invalid utf-8: %v", e.Err)
}

func (e *InvalidUTF8Error) Unwrap() error {
	return e.Err
}
