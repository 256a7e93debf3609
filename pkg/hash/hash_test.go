package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV10XSingleCharacter(t *testing.T) {
	h := V10X("a")
	assert.Equal(t, uint32(0x61_01_00_61), h.Low)
	assert.Equal(t, uint32(0), h.High)
}

func TestV10XHighWordIsSDBMOfRootAndExt(t *testing.T) {
	h := V10X("textures\\foo.dds")
	root := "textures\\foo"
	want := sdbm([]byte(root[1:len(root)-2])) + sdbm([]byte(".dds"))
	assert.Equal(t, want, h.High)
}

func TestV10XExtensionFlags(t *testing.T) {
	cases := []struct {
		ext  string
		flag uint32
	}{
		{".nif", 0x00008000},
		{".kf", 0x00000080},
		{".dds", 0x00008080},
		{".wav", 0x80000000},
		{".txt", 0},
	}
	for _, c := range cases {
		h := V10X("foo" + c.ext)
		assert.Equal(t, c.flag, h.Low&0x80008080, "extension %s", c.ext)
	}
}

func TestV10XSanitizeIsCaseAndSlashInsensitive(t *testing.T) {
	a := V10X("Textures/Foo.DDS")
	b := V10X("textures\\foo.dds")
	assert.Equal(t, a, b)
}

func TestV001HashOfShortPath(t *testing.T) {
	h := V001("a\\b")
	assert.Equal(t, uint32(0x0000_0061), h.High)
}

func TestV001SanitizeIsCaseAndSlashInsensitive(t *testing.T) {
	a := V001("Meshes/Foo.NIF")
	b := V001("meshes\\foo.nif")
	assert.Equal(t, a, b)
}

func TestV001Deterministic(t *testing.T) {
	assert.Equal(t, V001("clutter\\bottle01.nif"), V001("clutter\\bottle01.nif"))
}

func TestRotateRight32(t *testing.T) {
	assert.Equal(t, uint32(0x80000000), rotateRight32(1, 1))
	assert.Equal(t, uint32(1), rotateRight32(1, 0))
	assert.Equal(t, uint32(0x00010000), rotateRight32(1, 16))
}

func TestHashStringFormat(t *testing.T) {
	h := Hash{Low: 0x1, High: 0xabcdef01}
	assert.Equal(t, "00000001abcdef01", h.String())
}

func TestHashLess(t *testing.T) {
	a := Hash{Low: 1, High: 9}
	b := Hash{Low: 2, High: 0}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}
