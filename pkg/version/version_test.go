package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeV001(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x00, 0x01, 0x00})
	v, err := Probe(r)
	require.NoError(t, err)
	assert.Equal(t, MagicV001, v.Magic)
	assert.Equal(t, "v001", v.String())
}

func TestProbeV10X(t *testing.T) {
	cases := []struct {
		ver  uint32
		want Kind10X
	}{
		{103, V103},
		{104, V104},
		{105, V105},
	}
	for _, c := range cases {
		buf := append([]byte("BSA\x00"), 0, 0, 0, 0)
		buf[4] = byte(c.ver)
		r := bytes.NewReader(buf)
		v, err := Probe(r)
		require.NoError(t, err)
		assert.Equal(t, MagicV10X, v.Magic)
		assert.Equal(t, c.want, v.V10X)
	}
}

func TestProbeUnknownV10XVersion(t *testing.T) {
	buf := append([]byte("BSA\x00"), 200, 0, 0, 0)
	_, err := Probe(bytes.NewReader(buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown version")
}

func TestProbeBTDX(t *testing.T) {
	buf := append([]byte("BTDX"), 1, 0, 0, 0)
	v, err := Probe(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, MagicBTDX, v.Magic)
	assert.Equal(t, uint32(1), v.BA2Ver)
}

func TestProbeUnknownMagic(t *testing.T) {
	_, err := Probe(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown magic")
}
