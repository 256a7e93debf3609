package bstring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBString(&buf, "meshes\\foo.nif"))
	assert.Equal(t, SizeBString("meshes\\foo.nif"), buf.Len())

	got, err := ReadBString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "meshes\\foo.nif", got)
}

func TestBStringEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBString(&buf, ""))
	got, err := ReadBString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestBStringTooLong(t *testing.T) {
	s := strings.Repeat("a", MaxBStringLen+1)
	_, err := NewBString(s)
	require.Error(t, err)

	var buf bytes.Buffer
	err = WriteBString(&buf, s)
	require.Error(t, err)
}

func TestBStringMaxLength(t *testing.T) {
	s := strings.Repeat("a", MaxBStringLen)
	var buf bytes.Buffer
	require.NoError(t, WriteBString(&buf, s))
	got, err := ReadBString(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestZStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteZString(&buf, "textures/foo.dds"))
	assert.Equal(t, SizeZString("textures/foo.dds"), buf.Len())

	got, err := ReadZString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "textures/foo.dds", got)
}

func TestZStringStopsAtFirstNull(t *testing.T) {
	buf := bytes.NewBuffer([]byte("abc\x00def\x00"))
	got, err := ReadZString(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	rest, err := ReadZString(buf)
	require.NoError(t, err)
	assert.Equal(t, "def", rest)
}

func TestBZStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBZString(&buf, "sound\\fx"))
	assert.Equal(t, SizeBZString("sound\\fx"), buf.Len())

	got, err := ReadBZString(&buf)
	require.NoError(t, err)
	assert.Equal(t, "sound\\fx", got)
}

func TestBZStringLengthByteIncludesNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBZString(&buf, "ab"))
	b := buf.Bytes()
	assert.Equal(t, byte(3), b[0]) // "ab" + trailing null = 3
}

func TestBZStringTooLong(t *testing.T) {
	s := strings.Repeat("a", MaxBZStringLen+1)
	_, err := NewBZString(s)
	require.Error(t, err)

	var buf bytes.Buffer
	err = WriteBZString(&buf, s)
	require.Error(t, err)
}

func TestBZStringZeroLengthIsCorrupt(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00})
	_, err := ReadBZString(buf)
	require.Error(t, err)
}

func TestInvalidUTF8IsRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(2)
	buf.Write([]byte{0xff, 0xfe})

	_, err := ReadBString(&buf)
	require.Error(t, err)
}
