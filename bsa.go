// Package bsa is the variant facade over the four Bethesda Softworks
// Archive formats bsa-kit understands: the Morrowind flat-file container
// (v001) and the directory-based family shared by Oblivion, Fallout 3/NV,
// Skyrim LE, and Skyrim SE (v103/v104/v105). Open inspects an archive's
// magic number and version integer and returns a Reader that dispatches to
// the right concrete implementation without the caller needing to know
// which one it picked.
package bsa

import (
	"io"

	"github.com/elderscrolls-tools/bsa-kit/pkg/bsaerr"
	"github.com/elderscrolls-tools/bsa-kit/pkg/entry"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
	"github.com/elderscrolls-tools/bsa-kit/pkg/logging"
	"github.com/elderscrolls-tools/bsa-kit/pkg/option"
	"github.com/elderscrolls-tools/bsa-kit/pkg/profile"
	"github.com/elderscrolls-tools/bsa-kit/pkg/v001"
	"github.com/elderscrolls-tools/bsa-kit/pkg/v103"
	"github.com/elderscrolls-tools/bsa-kit/pkg/v104"
	"github.com/elderscrolls-tools/bsa-kit/pkg/v105"
	"github.com/elderscrolls-tools/bsa-kit/pkg/v10x"
	"github.com/elderscrolls-tools/bsa-kit/pkg/version"
)

// ReadSeeker is the subset of file access Open and Probe need.
type ReadSeeker interface {
	io.Reader
	io.Seeker
}

// WriteSeeker is the subset of file access Write needs: a writer that can
// seek backward to patch a positioned slot.
type WriteSeeker interface {
	io.Writer
	io.Seeker
}

// Probe seeks r to offset 0 and identifies the archive format from the
// first bytes, consuming at most 8 of them; r is left positioned just after
// the bytes read. It is the same check Open performs internally; callers
// that only need to know the format (an "info" command, a routing decision)
// can call it directly.
func Probe(r ReadSeeker) (version.Version, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return version.Version{}, err
	}
	return version.Probe(r)
}

// Listing is what Reader.List returns: exactly one of Files or Dirs is
// populated, matching the underlying format. v001 archives have no
// directory concept, so they populate Files; every v10x format populates
// Dirs.
type Listing struct {
	Files []entry.File
	Dirs  []entry.Directory
}

// Reader is a tagged union over the two concrete reader shapes bsa-kit
// implements: V001 for the flat Morrowind container, and V10X for the
// directory-based family. Exactly one of V001/V10X is non-nil, selected by
// Version().
type Reader struct {
	version version.Version
	v001    *v001.Reader
	v10x    *v10x.Reader
}

// Version reports which archive format this Reader was opened against.
func (rd *Reader) Version() version.Version {
	return rd.version
}

// V001 returns the underlying v001 reader and true, or (nil, false) if this
// Reader was opened against a v10x archive.
func (rd *Reader) V001() (*v001.Reader, bool) {
	return rd.v001, rd.v001 != nil
}

// V10X returns the underlying v10x reader and true, or (nil, false) if this
// Reader was opened against a v001 archive.
func (rd *Reader) V10X() (*v10x.Reader, bool) {
	return rd.v10x, rd.v10x != nil
}

// List returns every entry in the archive, populating Listing.Files for
// v001 archives and Listing.Dirs for every v10x format. The result is
// cached by the underlying reader, so repeated calls are cheap.
func (rd *Reader) List() (Listing, error) {
	if rd.v001 != nil {
		files, err := rd.v001.List()
		if err != nil {
			return Listing{}, err
		}
		return Listing{Files: files}, nil
	}
	dirs, err := rd.v10x.List()
	if err != nil {
		return Listing{}, err
	}
	return Listing{Dirs: dirs}, nil
}

// Extract streams f's decoded payload to w, dispatching to whichever
// concrete reader opened the archive.
func (rd *Reader) Extract(f entry.File, w io.Writer) error {
	if rd.v001 != nil {
		return rd.v001.Extract(f, w)
	}
	return rd.v10x.Extract(f, w)
}

func profileFor(kind version.Kind10X) (profile.Profile, error) {
	switch kind {
	case version.V103:
		return v103.Profile{}, nil
	case version.V104:
		return v104.Profile{}, nil
	case version.V105:
		return v105.Profile{}, nil
	default:
		return nil, &bsaerr.UnknownVersionError{Version: uint32(kind)}
	}
}

// Open probes r's format and returns a Reader dispatching to the matching
// concrete implementation. BA2 archives (BTDX magic) are recognized but not
// implemented, and are reported as Unsupported.
func Open(r ReadSeeker, opts ...option.OpenOption) (*Reader, error) {
	o := option.OpenOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = logging.DefaultLogger()
	}

	ver, err := Probe(r)
	if err != nil {
		return nil, err
	}

	switch ver.Magic {
	case version.MagicV001:
		rd, err := v001.NewReader(r, log)
		if err != nil {
			return nil, err
		}
		return &Reader{version: ver, v001: rd}, nil
	case version.MagicV10X:
		p, err := profileFor(ver.V10X)
		if err != nil {
			return nil, err
		}
		rd, err := v10x.NewReader(r, p, log)
		if err != nil {
			return nil, err
		}
		return &Reader{version: ver, v10x: rd}, nil
	case version.MagicBTDX:
		return nil, &bsaerr.UnsupportedVersionError{Name: ver.String()}
	default:
		return nil, &bsaerr.UnknownMagicError{}
	}
}

// Target selects which on-disk format Write emits.
type Target int

const (
	TargetV001 Target = iota
	TargetV103
	TargetV104
	TargetV105
)

func (t Target) String() string {
	switch t {
	case TargetV001:
		return "v001"
	case TargetV103:
		return "v103"
	case TargetV104:
		return "v104"
	case TargetV105:
		return "v105"
	default:
		return "unknown"
	}
}

// File is one file's worth of input to Write: the name it should be
// archived under, its payload source, and (for v10x targets) whether it
// overrides the archive's default compression.
type File struct {
	Name       string
	Compressed *bool
	Open       func() (io.ReadCloser, error)
}

// Dir is one directory's worth of input to Write. v001 targets flatten
// Dir.Name and each File.Name into a single "dir\name" path; v10x targets
// preserve the directory structure on disk.
type Dir struct {
	Name  string
	Files []File
}

// Tree is the full directory tree Write archives.
type Tree struct {
	Dirs []Dir
}

// Write builds a complete archive of the given target format from tree and
// streams it to w. Requesting compression for a v001 target fails with
// CompressionNotSupportedError, since Morrowind's format predates BSA
// compression entirely.
func Write(w WriteSeeker, target Target, tree Tree, opts ...option.WriteOption) error {
	o := option.WriteOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if target == TargetV001 {
		sources := make([]v001.FileSource, 0)
		for _, d := range tree.Dirs {
			for _, f := range d.Files {
				if f.Compressed != nil && *f.Compressed {
					return &bsaerr.CompressionNotSupportedError{Version: "v001"}
				}
				sources = append(sources, v001.FileSource{Dir: d.Name, Name: f.Name, Open: f.Open})
			}
		}
		return v001.WriteArchive(w, sources)
	}

	var p profile.Profile
	switch target {
	case TargetV103:
		p = v103.Profile{}
	case TargetV104:
		p = v104.Profile{}
	case TargetV105:
		p = v105.Profile{}
	default:
		return &bsaerr.UnknownVersionError{Version: uint32(target)}
	}

	dirs := make([]v10x.DirSource, len(tree.Dirs))
	for i, d := range tree.Dirs {
		files := make([]v10x.FileSource, len(d.Files))
		for j, f := range d.Files {
			files[j] = v10x.FileSource{Name: f.Name, Compressed: f.Compressed, Open: f.Open}
		}
		dirs[i] = v10x.DirSource{Name: d.Name, Files: files}
	}

	return v10x.WriteArchive(w, p, v10x.WriterOptions{
		ArchiveFlags: o.ArchiveFlags(),
		FileFlags:    0,
	}, dirs)
}

// Has is a convenience re-export so callers can test archive flags without
// importing pkg/header directly.
func Has(flags header.ArchiveFlag, flag header.ArchiveFlag) bool {
	return flags.Has(flag)
}
