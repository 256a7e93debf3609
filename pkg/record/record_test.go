package record

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
)

func TestDirRoundTrip(t *testing.T) {
	d := Dir{NameHash: hash.V10X("textures"), FileCount: 4, Offset: 0x1000}
	var buf bytes.Buffer
	require.NoError(t, WriteDir(&buf, d))
	assert.Equal(t, consts.DirRecordSizeV103, buf.Len())

	got, err := ReadDir(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDirPaddedRoundTrip(t *testing.T) {
	d := Dir{NameHash: hash.V10X("meshes"), FileCount: 9, Offset: 0x2000}
	var buf bytes.Buffer
	require.NoError(t, WriteDirPadded(&buf, d))
	assert.Equal(t, consts.DirRecordSizeV105, buf.Len())

	got, err := ReadDirPadded(&buf)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDirPaddedZeroesThePaddingFields(t *testing.T) {
	d := Dir{NameHash: hash.V10X("sound"), FileCount: 1, Offset: 0x40}
	var buf bytes.Buffer
	require.NoError(t, WriteDirPadded(&buf, d))
	b := buf.Bytes()
	assert.Equal(t, []byte{0, 0, 0, 0}, b[12:16]) // padding before offset
	assert.Equal(t, []byte{0, 0, 0, 0}, b[20:24]) // padding after offset
}

func TestFileRoundTrip(t *testing.T) {
	f := File{NameHash: hash.V10X("foo.nif"), Size: 0x4000_0100, Offset: 0x500}
	var buf bytes.Buffer
	require.NoError(t, WriteFile(&buf, f))
	assert.Equal(t, consts.FileRecordSize, buf.Len())

	got, err := ReadFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestFileCompressionBitAndRealSize(t *testing.T) {
	f := File{Size: 1234 | consts.CompressionInvertBit}
	assert.True(t, f.IsCompressionBitSet())
	assert.Equal(t, uint32(1234), f.RealSize())

	plain := File{Size: 1234}
	assert.False(t, plain.IsCompressionBitSet())
	assert.Equal(t, uint32(1234), plain.RealSize())
}

func TestDirContentRoundTripWithName(t *testing.T) {
	name := "textures"
	dc := DirContent{
		Name: &name,
		Files: []File{
			{NameHash: hash.V10X("a.dds"), Size: 10, Offset: 100},
			{NameHash: hash.V10X("b.dds"), Size: 20, Offset: 200},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDirContent(&buf, dc))
	assert.Equal(t, SizeDirContent(dc), buf.Len())

	got, err := ReadDirContent(&buf, true, 2)
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, name, *got.Name)
	assert.Equal(t, dc.Files, got.Files)
}

func TestDirContentRoundTripWithoutName(t *testing.T) {
	dc := DirContent{Files: []File{{NameHash: hash.V10X("c.wav"), Size: 5, Offset: 50}}}
	var buf bytes.Buffer
	require.NoError(t, WriteDirContent(&buf, dc))
	assert.Equal(t, SizeDirContent(dc), buf.Len())

	got, err := ReadDirContent(&buf, false, 1)
	require.NoError(t, err)
	assert.Nil(t, got.Name)
	assert.Equal(t, dc.Files, got.Files)
}
