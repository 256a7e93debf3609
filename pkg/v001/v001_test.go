package v001

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
)

type sourceFile struct {
	dir, name string
	body      []byte
}

func openArchive(t *testing.T, sources []sourceFile) (*Reader, *os.File) {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "archive-*.bsa")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	files := make([]FileSource, len(sources))
	for i, s := range sources {
		body := s.body
		files[i] = FileSource{
			Dir:  s.dir,
			Name: s.name,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(body)), nil },
		}
	}
	require.NoError(t, WriteArchive(f, files))

	_, err = f.Seek(4, io.SeekStart) // past the magic number
	require.NoError(t, err)

	rd, err := NewReader(f, nil)
	require.NoError(t, err)
	return rd, f
}

func TestWriteArchiveThenListAndExtractRoundTrip(t *testing.T) {
	sources := []sourceFile{
		{dir: "meshes", name: "a.nif", body: []byte("mesh-a-payload")},
		{dir: "textures", name: "b.dds", body: []byte("texture-b-payload-longer")},
		{dir: "sound", name: "c.wav", body: []byte("")},
	}
	rd, _ := openArchive(t, sources)

	files, err := rd.List()
	require.NoError(t, err)
	require.Len(t, files, len(sources))

	byName := make(map[string][]byte, len(sources))
	for _, s := range sources {
		byName[s.dir+"\\"+s.name] = s.body
	}

	for _, f := range files {
		assert.False(t, f.Compressed)
		require.True(t, f.ID.HasName())
		want, ok := byName[*f.ID.Name]
		require.True(t, ok, "unexpected file name %q", *f.ID.Name)
		assert.Equal(t, len(want), f.Size)

		var out bytes.Buffer
		require.NoError(t, rd.Extract(f, &out))
		assert.Equal(t, want, out.Bytes())
	}
}

func TestListIsSortedByHashAndCached(t *testing.T) {
	sources := []sourceFile{
		{dir: "a", name: "1.nif", body: []byte("one")},
		{dir: "b", name: "2.nif", body: []byte("two")},
		{dir: "c", name: "3.nif", body: []byte("three")},
	}
	rd, _ := openArchive(t, sources)

	first, err := rd.List()
	require.NoError(t, err)
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].ID.Hash.Less(first[i-1].ID.Hash), "list must be sorted by hash")
	}

	second, err := rd.List()
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])
}

func TestWriteArchiveRejectsHashCollision(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "collide-*.bsa")
	require.NoError(t, err)
	defer f.Close()

	open := func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(nil)), nil }
	files := []FileSource{
		{Dir: "a", Name: "same", Open: open},
		{Dir: "a", Name: "same", Open: open},
	}
	err = WriteArchive(f, files)
	require.Error(t, err)
}

func TestWriteArchiveStartsWithV001Magic(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "magic-*.bsa")
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, WriteArchive(f, nil))
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	magic, err := binary.ReadUint32(f)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010000), magic)
}

func TestWriteArchivePreservesOrderIndependentOfInputOrder(t *testing.T) {
	sourcesA := []sourceFile{
		{dir: "x", name: "1.nif", body: []byte("1")},
		{dir: "x", name: "2.nif", body: []byte("2")},
	}
	sourcesB := []sourceFile{sourcesA[1], sourcesA[0]}

	rdA, _ := openArchive(t, sourcesA)
	rdB, _ := openArchive(t, sourcesB)

	filesA, err := rdA.List()
	require.NoError(t, err)
	filesB, err := rdB.List()
	require.NoError(t, err)

	namesA := make([]string, len(filesA))
	for i, f := range filesA {
		namesA[i] = *f.ID.Name
	}
	namesB := make([]string, len(filesB))
	for i, f := range filesB {
		namesB[i] = *f.ID.Name
	}
	assert.Equal(t, namesA, namesB)
}
