package binary

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSeeker is a minimal in-memory WriteSeeker standing in for the
// *os.File a real writer targets.
type memSeeker struct {
	buf []byte
	pos int64
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.buf))
	}
	m.pos = base + offset
	return m.pos, nil
}

func TestScalarRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint16(&buf, 0xABCD))
	require.NoError(t, WriteUint32(&buf, 0xDEADBEEF))
	require.NoError(t, WriteUint64(&buf, 0x0102030405060708))
	require.NoError(t, WriteByte(&buf, 0x42))

	u16, err := ReadUint16(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), u16)

	u32, err := ReadUint32(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := ReadUint64(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	b, err := ReadByte(&buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)
}

func TestSlotReservesZeroesAndTracksPosition(t *testing.T) {
	m := &memSeeker{}
	require.NoError(t, WriteUint32(m, 0x11111111))

	slot, err := NewSlot[uint32](m, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), slot.Pos())

	require.NoError(t, WriteUint32(m, 0x22222222))
	assert.Equal(t, []byte{0x11, 0x11, 0x11, 0x11, 0, 0, 0, 0, 0x22, 0x22, 0x22, 0x22}, m.buf)
}

func TestSlotPatchWritesValueAndRestoresPosition(t *testing.T) {
	m := &memSeeker{}
	require.NoError(t, WriteUint32(m, 0xAAAAAAAA))

	slot, err := NewSlot[uint32](m, 4)
	require.NoError(t, err)

	require.NoError(t, WriteUint32(m, 0xBBBBBBBB))
	posBeforePatch := m.pos

	require.NoError(t, PatchUint32(m, slot, 0xCAFEBABE))
	assert.Equal(t, posBeforePatch, m.pos)

	r := bytes.NewReader(m.buf)
	_, _ = ReadUint32(r) // skip leading field
	patched, err := ReadUint32(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), patched)
}

func TestSlotPatchCanWriteWiderValueThanUint32(t *testing.T) {
	m := &memSeeker{}
	slot, err := NewSlot[uint64](m, 8)
	require.NoError(t, err)
	require.NoError(t, WriteByte(m, 0xFF))

	require.NoError(t, slot.Patch(m, func(w io.Writer) error {
		return WriteUint64(w, 0x0102030405060708)
	}))

	r := bytes.NewReader(m.buf[:8])
	got, err := ReadUint64(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), got)
	assert.Equal(t, byte(0xFF), m.buf[8])
}
