// Package v10x implements the directory-based archive skeleton shared by
// v103, v104, and v105: a fixed header, a directory index, a per-directory
// content block (name + file records), a flat file-name blob, and the file
// payloads themselves. The differences between the three formats — record
// padding, embedded file names, and compression codec — are supplied by a
// profile.Profile so this package is written once against the shape all
// three share.
package v10x

import (
	"io"
	"math"
	"sort"

	"github.com/elderscrolls-tools/bsa-kit/pkg/binary"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bstring"
	"github.com/elderscrolls-tools/bsa-kit/pkg/bsaerr"
	"github.com/elderscrolls-tools/bsa-kit/pkg/consts"
	"github.com/elderscrolls-tools/bsa-kit/pkg/entry"
	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
	"github.com/elderscrolls-tools/bsa-kit/pkg/profile"
	"github.com/elderscrolls-tools/bsa-kit/pkg/record"
)

// ReadSeeker is the subset of file access a Reader needs.
type ReadSeeker interface {
	io.Reader
	io.Seeker
}

// Reader reads directories and extracts files from a v10x archive. Build
// one with NewReader, positioned right after the magic number and version
// integer have already been consumed (by version.Probe or equivalent).
type Reader struct {
	r       ReadSeeker
	profile profile.Profile
	header  header.V10X
	log     *logging.Logger
	dirs    []entry.Directory
}

// NewReader reads the 28-byte v10x header from r's current position and
// returns a Reader ready to List and Extract.
func NewReader(r ReadSeeker, p profile.Profile, log *logging.Logger) (*Reader, error) {
	if log == nil {
		log = logging.DefaultLogger()
	}
	h, err := header.ReadV10X(r)
	if err != nil {
		return nil, &bsaerr.CorruptError{Where: "v10x header", Err: err}
	}
	log.Debug("read v10x header", "dirCount", h.DirCount, "fileCount", h.FileCount)
	return &Reader{r: r, profile: p, header: h, log: log}, nil
}

// Header returns the archive's parsed header.
func (rd *Reader) Header() header.V10X {
	return rd.header
}

func (rd *Reader) offsetAfterHeader() int64 {
	return consts.OffsetAfterHeaderV10X
}

func (rd *Reader) offsetFileNames() int64 {
	dirRecordsSize := int64(rd.profile.DirRecordSize()) * int64(rd.header.DirCount)
	var dirNamesSize int64
	if rd.header.Has(header.IncludeDirectoryNames) {
		dirNamesSize = int64(rd.header.EffectiveTotalDirNameLength())
	}
	fileRecordsSize := int64(rd.header.FileCount) * consts.FileRecordSize
	return rd.offsetAfterHeader() + dirRecordsSize + dirNamesSize + fileRecordsSize
}

// readFileNames returns the hash -> name map for every embedded file name,
// empty if the archive does not carry file names.
func (rd *Reader) readFileNames() (map[hash.Hash]string, error) {
	if _, err := rd.r.Seek(rd.offsetFileNames(), io.SeekStart); err != nil {
		return nil, err
	}
	names := make(map[hash.Hash]string)
	if !rd.header.Has(header.IncludeFileNames) {
		return names, nil
	}
	for i := uint32(0); i < rd.header.FileCount; i++ {
		name, err := bstring.ReadZString(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "file name blob", Err: err}
		}
		names[hash.V10X(name)] = name
	}
	return names, nil
}

func (rd *Reader) toFile(names map[hash.Hash]string, f record.File) entry.File {
	compressedByDefault := rd.header.Has(header.CompressedArchive)
	compressed := f.IsCompressionBitSet() != compressedByDefault
	var namePtr *string
	if n, ok := names[f.NameHash]; ok {
		namePtr = &n
	}
	return entry.File{
		ID:         entry.ID{Hash: f.NameHash, Name: namePtr},
		Compressed: compressed,
		Offset:     uint64(f.Offset),
		Size:       int(f.RealSize()),
	}
}

func (rd *Reader) readDir(names map[hash.Hash]string, dir record.Dir) (entry.Directory, error) {
	hasDirName := rd.header.Has(header.IncludeDirectoryNames)
	pos := int64(dir.Offset) - int64(rd.header.TotalFileNameLength)
	if _, err := rd.r.Seek(pos, io.SeekStart); err != nil {
		return entry.Directory{}, err
	}
	content, err := record.ReadDirContent(rd.r, hasDirName, dir.FileCount)
	if err != nil {
		return entry.Directory{}, &bsaerr.CorruptError{Where: "directory content record", Err: err}
	}
	files := make([]entry.File, len(content.Files))
	for i, f := range content.Files {
		files[i] = rd.toFile(names, f)
	}
	return entry.Directory{
		ID:    entry.ID{Hash: dir.NameHash, Name: content.Name},
		Files: files,
	}, nil
}

// List returns every directory and its files, reading and caching them on
// first call.
func (rd *Reader) List() ([]entry.Directory, error) {
	if rd.dirs != nil {
		return rd.dirs, nil
	}
	if _, err := rd.r.Seek(rd.offsetAfterHeader(), io.SeekStart); err != nil {
		return nil, err
	}
	rawDirs := make([]record.Dir, rd.header.DirCount)
	for i := range rawDirs {
		d, err := rd.profile.ReadDirRecord(rd.r)
		if err != nil {
			return nil, &bsaerr.CorruptError{Where: "directory record", Err: err}
		}
		rawDirs[i] = d
	}

	names, err := rd.readFileNames()
	if err != nil {
		return nil, err
	}

	dirs := make([]entry.Directory, len(rawDirs))
	for i, d := range rawDirs {
		dir, err := rd.readDir(names, d)
		if err != nil {
			return nil, err
		}
		dirs[i] = dir
	}
	rd.dirs = dirs
	return dirs, nil
}

// Extract streams one file's decoded payload to w.
func (rd *Reader) Extract(f entry.File, w io.Writer) error {
	if _, err := rd.r.Seek(int64(f.Offset), io.SeekStart); err != nil {
		return err
	}
	if rd.profile.EmbedsFileNames(rd.header.ArchiveFlags) {
		n, err := binary.ReadByte(rd.r)
		if err != nil {
			return err
		}
		if _, err := rd.r.Seek(int64(n), io.SeekCurrent); err != nil {
			return err
		}
	}
	limited := io.LimitReader(rd.r, int64(f.Size))
	if f.Compressed {
		if _, err := binary.ReadUint32(rd.r); err != nil { // original size, informational
			return err
		}
		limited = io.LimitReader(rd.r, int64(f.Size))
		_, err := rd.profile.Codec().Decompress(w, limited)
		return err
	}
	_, err := io.Copy(w, limited)
	return err
}

// DirSource is one directory's worth of input for WriteArchive.
type DirSource struct {
	Name  string
	Files []FileSource
}

// FileSource is one file's worth of input for WriteArchive. Compressed is a
// pointer so "unset" (use the archive default) is distinguishable from
// "explicitly false".
type FileSource struct {
	Name       string
	Compressed *bool
	Open       func() (io.ReadCloser, error)
}

// WriterOptions controls the archive-wide flags a write uses.
type WriterOptions struct {
	ArchiveFlags header.ArchiveFlag
	FileFlags    header.FileFlag
}

// DefaultWriterOptions returns the flags every v10x writer needs at
// minimum: both name tables present, nothing else set.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		ArchiveFlags: header.IncludeFileNames | header.IncludeDirectoryNames,
	}
}

type writeSeeker interface {
	io.Writer
	io.Seeker
}

// WriteArchive writes a complete v10x archive: version, header, directory
// records, directory content blocks, the file-name blob, and every file's
// payload, in that order, patching offset/size fields as they become known.
func WriteArchive(w writeSeeker, p profile.Profile, opts WriterOptions, dirs []DirSource) error {
	sorted := make([]DirSource, len(dirs))
	copy(sorted, dirs)
	sort.Slice(sorted, func(i, j int) bool {
		return hash.V10X(sorted[i].Name).Less(hash.V10X(sorted[j].Name))
	})
	for i, dir := range sorted {
		files := make([]FileSource, len(dir.Files))
		copy(files, dir.Files)
		sort.Slice(files, func(a, b int) bool {
			return hash.V10X(files[a].Name).Less(hash.V10X(files[b].Name))
		})
		sorted[i].Files = files
	}

	if err := checkCollisions(sorted); err != nil {
		return err
	}

	includesFileNames := opts.ArchiveFlags.Has(header.IncludeFileNames)
	includesDirNames := opts.ArchiveFlags.Has(header.IncludeDirectoryNames)

	h := header.V10X{
		Offset:       consts.OffsetAfterHeaderV10X,
		ArchiveFlags: opts.ArchiveFlags,
		FileFlags:    opts.FileFlags,
	}
	var fileNames []string
	for _, dir := range sorted {
		h.DirCount++
		h.FileCount += uint32(len(dir.Files))
		if includesDirNames {
			h.TotalDirNameLength += uint32(len(dir.Name)) + 1
		}
		if includesFileNames {
			for _, f := range dir.Files {
				fileNames = append(fileNames, f.Name)
			}
		}
	}
	for _, n := range fileNames {
		h.TotalFileNameLength += uint32(bstring.SizeZString(n))
	}

	if err := binary.WriteUint32(w, magicV10X()); err != nil {
		return err
	}
	if err := binary.WriteUint32(w, uint32(p.Kind())); err != nil {
		return err
	}
	if err := header.WriteV10X(w, h); err != nil {
		return err
	}

	type dirSlot struct {
		pos    int64
		rec    record.Dir
		source DirSource
	}
	dirSlots := make([]dirSlot, len(sorted))
	for i, dir := range sorted {
		pos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		rec := record.Dir{NameHash: hash.V10X(dir.Name), FileCount: uint32(len(dir.Files))}
		if err := p.WriteDirRecord(w, rec); err != nil {
			return err
		}
		dirSlots[i] = dirSlot{pos: pos, rec: rec, source: dir}
	}

	type fileSlot struct {
		pos int64
		rec record.File
	}
	contentSlots := make([][]fileSlot, len(sorted))
	for i, dir := range sorted {
		contentPos, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if includesDirNames {
			if err := bstring.WriteBZString(w, dir.Name); err != nil {
				return err
			}
		}
		slots := make([]fileSlot, len(dir.Files))
		for j, f := range dir.Files {
			fpos, err := w.Seek(0, io.SeekCurrent)
			if err != nil {
				return err
			}
			size := uint32(0)
			compressedByDefault := opts.ArchiveFlags.Has(header.CompressedArchive)
			wantCompressed := compressedByDefault
			if f.Compressed != nil {
				wantCompressed = *f.Compressed
			}
			if wantCompressed != compressedByDefault {
				size = consts.CompressionInvertBit
			}
			rec := record.File{NameHash: hash.V10X(f.Name), Size: size}
			if err := record.WriteFile(w, rec); err != nil {
				return err
			}
			slots[j] = fileSlot{pos: fpos, rec: rec}
		}
		contentSlots[i] = slots

		dr := dirSlots[i].rec
		dr.Offset = uint32(contentPos) + h.TotalFileNameLength
		dirSlots[i].rec = dr
		if err := patchAt(w, dirSlots[i].pos, func(w io.Writer) error {
			return p.WriteDirRecord(w, dr)
		}); err != nil {
			return err
		}
	}

	for _, n := range fileNames {
		if err := bstring.WriteZString(w, n); err != nil {
			return err
		}
	}

	codec := p.Codec()
	for i, dir := range sorted {
		for j, f := range dir.Files {
			pos, err := w.Seek(0, io.SeekCurrent)
			if err != nil {
				return err
			}
			rc, err := f.Open()
			if err != nil {
				return err
			}
			compressedByDefault := opts.ArchiveFlags.Has(header.CompressedArchive)
			wantCompressed := compressedByDefault
			if f.Compressed != nil {
				wantCompressed = *f.Compressed
			}

			if p.EmbedsFileNames(opts.ArchiveFlags) {
				path := dir.Name + "\\" + f.Name
				if err := bstring.WriteBString(w, path); err != nil {
					rc.Close()
					return err
				}
			}

			var payloadSize int64
			if wantCompressed {
				sizeSlot, err := binary.NewSlot[uint32](w, 4)
				if err != nil {
					rc.Close()
					return err
				}
				src := &io.LimitedReader{R: rc, N: math.MaxInt64}
				n, err := codec.Compress(w, src)
				rc.Close()
				if err != nil {
					return err
				}
				if err := binary.PatchUint32(w, sizeSlot, uint32(math.MaxInt64-src.N)); err != nil {
					return err
				}
				payloadSize = n
			} else {
				n, err := io.Copy(w, rc)
				rc.Close()
				if err != nil {
					return err
				}
				payloadSize = n
			}

			rec := contentSlots[i][j].rec
			rec.Offset = uint32(pos)
			rec.Size |= uint32(payloadSize)
			if err := patchAt(w, contentSlots[i][j].pos, func(w io.Writer) error {
				return record.WriteFile(w, rec)
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkCollisions reports a HashCollisionError if two directory names hash
// alike, or two file names within the same directory hash alike, including
// a name that appears twice. Run before any bytes are written: a v10x
// directory is looked up by hash, and so is a file within it, so either
// collision would make one of the two entries permanently unreachable.
func checkCollisions(dirs []DirSource) error {
	dirHashes := make(map[hash.Hash]string, len(dirs))
	for _, dir := range dirs {
		h := hash.V10X(dir.Name)
		if existing, ok := dirHashes[h]; ok {
			return &bsaerr.HashCollisionError{A: dir.Name, B: existing}
		}
		dirHashes[h] = dir.Name

		fileHashes := make(map[hash.Hash]string, len(dir.Files))
		for _, f := range dir.Files {
			fh := hash.V10X(f.Name)
			if existing, ok := fileHashes[fh]; ok {
				return &bsaerr.HashCollisionError{A: f.Name, B: existing}
			}
			fileHashes[fh] = f.Name
		}
	}
	return nil
}

func patchAt(w writeSeeker, pos int64, encode func(io.Writer) error) error {
	cur, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := w.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	if err := encode(w); err != nil {
		return err
	}
	_, err = w.Seek(cur, io.SeekStart)
	return err
}

func magicV10X() uint32 {
	return 0x00415342 // "BSA\0", little-endian u32
}
