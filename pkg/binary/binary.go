// Package binary provides the little-endian scalar read/write helpers and
// the positioned-slot rewrite primitive shared by every archive profile.
//
// BSA containers are written in a single forward pass: a writer reserves a
// fixed-size placeholder for a field it cannot compute yet (an offset, a
// compressed size), keeps writing, and returns later to patch the
// placeholder once the real value is known. Slot captures that pattern.
package binary

import (
	"encoding/binary"
	"io"
)

// ReadUint16 reads a little-endian uint16.
func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadUint32 reads a little-endian uint32.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadUint64 reads a little-endian uint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadByte reads a single byte.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteUint16 writes v as a little-endian uint16.
func WriteUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteUint32 writes v as a little-endian uint32.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteUint64 writes v as a little-endian uint64.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteByte writes a single byte.
func WriteByte(w io.Writer, v byte) error {
	_, err := w.Write([]byte{v})
	return err
}

// Seeker is the subset of io.Seeker a Slot needs to find and return to its
// reserved position.
type Seeker interface {
	io.Writer
	io.Seeker
}

// Slot reserves space for a value of type T that can't be computed until
// more of the stream has been written. NewSlot writes a zero placeholder and
// remembers the stream position; Patch seeks back, writes the real value via
// encode, and restores the original write position.
type Slot[T any] struct {
	pos   int64
	width int
}

// NewSlot writes width zero bytes at the writer's current position and
// returns a Slot that can later Patch that span.
func NewSlot[T any](w Seeker, width int) (Slot[T], error) {
	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return Slot[T]{}, err
	}
	if _, err := w.Write(make([]byte, width)); err != nil {
		return Slot[T]{}, err
	}
	return Slot[T]{pos: pos, width: width}, nil
}

// Pos returns the absolute stream offset the slot occupies.
func (s Slot[T]) Pos() int64 {
	return s.pos
}

// Patch seeks to the slot's reserved position, calls encode to write the
// real value, and then seeks back to where the writer was before Patch was
// called, so the caller can keep appending to the stream.
func (s Slot[T]) Patch(w Seeker, encode func(io.Writer) error) error {
	cur, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.Seek(s.pos, io.SeekStart); err != nil {
		return err
	}
	if err := encode(w); err != nil {
		return err
	}
	_, err = w.Seek(cur, io.SeekStart)
	return err
}

// PatchUint32 is a convenience wrapper around Patch for the overwhelmingly
// common case of a reserved uint32 field (offsets, sizes).
func PatchUint32(w Seeker, s Slot[uint32], v uint32) error {
	return s.Patch(w, func(w io.Writer) error {
		return WriteUint32(w, v)
	})
}
