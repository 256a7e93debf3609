// Package v001 implements the Morrowind archive format: a flat file list
// with no directory concept, no compression support, and a hash table
// stored separately from the file records.
package v001

import (
	"io"
	"sort"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bsaerr"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bstring"
	"github.com/elderscrolls-tools/bsa-kit/pkg/entry"
	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
)

const (
	fileRecordSize  = 8 // size uint32 + offset uint32
	offsetAfterHdr  = 4 + header.SizeV001
	nameOffsetWidth = 4
)

// ReadSeeker is the subset of file access a Reader needs.
type ReadSeeker interface {
	io.Reader
	io.Seeker
}

// Reader reads the flat file list from a v001 archive. Build one with
// NewReader, positioned right after the magic number.
type Reader struct {
	r      ReadSeeker
	header header.V001
	log    *logging.Logger
	files  []entry.File
}

// NewReader reads the 8-byte v001 header from r's current position.
func NewReader(r ReadSeeker, log *logging.Logger) (*Reader, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}
	h, err := header.ReadV001(r)
	if err != nil {
		return nil, &bsaerr.CorruptError{Where: "v001 header", Err: err}
	}
	log.Debug("read v001 header", "fileCount", h.FileCount)
	return &Reader{r: r, header: h, log: log}, nil
}

// Header returns the archive's parsed header.
func (rd *Reader) Header() header.V001 {
	return rd.header
}

func offsetNamesStart(fileCount int64) int64 {
	return offsetAfterHdr + fileCount*(fileRecordSize+nameOffsetWidth)
}

func (rd *Reader) offsetAfterIndex() int64 {
	return offsetAfterHdr + int64(rd.header.OffsetHashTable) + hash.Size*int64(rd.header.FileCount)
}

type fileRecord struct {
	size, offset uint32
}

func readFileRecord(r io.Reader) (fileRecord, error) {
	size, err := binary.ReadUint32(r)
	if err != nil {
		return fileRecord{}, err
	}
	offset, err := binary.ReadUint32(r)
	if err != nil {
		return fileRecord{}, err
	}
	return fileRecord{size: size, offset: offset}, nil
}

// List returns every file in the archive, reading and caching on first
// call.
func (rd *Reader) List() ([]entry.File, error) {
	if rd.files != nil {
		return rd.files, nil
	}
	n := int(rd.header.FileCount)

	if _, err := rd.r.Seek(offsetAfterHdr, io.SeekStart); err != nil {
		return nil, err
	}
	recs := make([]fileRecord, n)
	for i := range recs {
		rec, err := readFileRecord(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "file record", Err: err}
		}
		recs[i] = rec
	}
	nameOffsets := make([]uint32, n)
	for i := range nameOffsets {
		off, err := binary.ReadUint32(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "name offset table", Err: err}
		}
		nameOffsets[i] = off
	}

	if _, err := rd.r.Seek(offsetAfterHdr+int64(rd.header.OffsetHashTable), io.SeekStart); err != nil {
		return nil, err
	}
	hashes := make([]hash.Hash, n)
	for i := range hashes {
		h, err := hash.Read(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "hash table", Err: err}
		}
		hashes[i] = h
	}

	namesStart := offsetNamesStart(int64(n))
	offsetAfterIndex := rd.offsetAfterIndex()

	files := make([]entry.File, n)
	for i, rec := range recs {
		pos := namesStart + int64(nameOffsets[i])
		if _, err := rd.r.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
		name, err := bstring.ReadZString(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "file name", Err: err}
		}
		n := name
		files[i] = entry.File{
			ID:         entry.ID{Hash: hashes[i], Name: &n},
			Compressed: false,
			Offset:     uint64(offsetAfterIndex + int64(rec.offset)),
			Size:       int(rec.size),
		}
	}
	rd.files = files
	return files, nil
}

// Extract streams one file's raw payload to w. v001 never compresses.
func (rd *Reader) Extract(f entry.File, w io.Writer) error {
	if _, err := rd.r.Seek(int64(f.Offset), io.SeekStart); err != nil {
		return err
	}
	_, err := io.Copy(w, io.LimitReader(rd.r, int64(f.Size)))
	return err
}

// FileSource is one file's worth of input for WriteArchive.
type FileSource struct {
	Dir, Name string
	Open      func() (io.ReadCloser, error)
}

type writeSeeker interface {
	io.Writer
	io.Seeker
}

// WriteArchive writes a complete v001 archive. Paths are hashed as
// "dir\name", lowercased; a collision between two distinct paths is an
// error since v001 has no way to disambiguate entries sharing a hash.
func WriteArchive(w writeSeeker, files []FileSource) error {
	type outFile struct {
		path string
		src  FileSource
	}
	byHash := make(map[hash.Hash]outFile, len(files))
	order := make([]hash.Hash, 0, len(files))
	var offsetHashTable uint32
	for _, f := range files {
		path := toLowerPath(f.Dir) + "\\" + toLowerPath(f.Name)
		h := hash.V001(path)
		if existing, ok := byHash[h]; ok {
			return &bsaerr.HashCollisionError{A: path, B: existing.path}
		}
		byHash[h] = outFile{path: path, src: f}
		order = append(order, h)
		offsetHashTable += uint32(fileRecordSize + nameOffsetWidth + len(path) + 1)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })

	if err := binary.WriteUint32(w, 0x00010000); err != nil { // magic, no version int for v001
		return err
	}
	h := header.V001{OffsetHashTable: offsetHashTable, FileCount: uint32(len(files))}
	if err := header.WriteV001(w, h); err != nil {
		return err
	}

	type recSlot struct{ sizePos, offsetPos int64 }
	recPositions := make([]recSlot, len(order))
	for i := range order {
		sizePos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if err := binary.WriteUint32(w, 0); err != nil {
			return err
		}
		offsetPos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if err := binary.WriteUint32(w, 0); err != nil {
			return err
		}
		recPositions[i] = recSlot{sizePos: sizePos, offsetPos: offsetPos}
	}

	nameOffsetPositions := make([]int64, len(order))
	for i := range order {
		pos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		nameOffsetPositions[i] = pos
		if err := binary.WriteUint32(w, 0); err != nil {
			return err
		}
	}

	namesStart := offsetNamesStart(int64(len(order)))
	for i, hv := range order {
		of := byHash[hv]
		pos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if err := patchUint32At(w, nameOffsetPositions[i], uint32(pos-namesStart)); err != nil {
			return err
		}
		if err := bstring.WriteZString(w, of.path); err != nil {
			return err
		}
	}

	for _, hv := range order {
		if err := hash.Write(w, hv); err != nil {
			return err
		}
	}

	offsetAfterIndex := offsetAfterHdr + int64(offsetHashTable) + hash.Size*int64(len(order))
	for i, hv := range order {
		of := byHash[hv]
		pos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		rc, err := of.src.Open()
		if err != nil {
			return err
		}
		n, err := io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return err
		}
		if err := patchUint32At(w, recPositions[i].offsetPos, uint32(pos-offsetAfterIndex)); err != nil {
			return err
		}
		if err := patchUint32At(w, recPositions[i].sizePos, uint32(n)); err != nil {
			return err
		}
	}
	return nil
}

func patchUint32At(w writeSeeker, pos int64, v uint32) error {
	cur, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, v); err != nil {
		return err
	}
	_, err = w.Seek(cur, io.SeekStart)
	return err
}

func toLowerPath(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
