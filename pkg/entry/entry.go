// Package entry holds the in-memory directory and file types every profile
// reader produces, independent of which on-disk format they were read from.
package entry

import (
	"fmt"
	"strings"

	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
)

// ID identifies a directory or file by its hash and, when the archive
// embeds names, the path it was hashed from.
type ID struct {
	Hash hash.Hash
	Name *string
}

// String renders the entry's path with backslashes normalized to forward
// slashes, or "#<hash>" when no name was recovered from the archive.
func (id ID) String() string {
	if id.Name == nil {
		return fmt.Sprintf("#%s", id.Hash)
	}
	return strings.ReplaceAll(*id.Name, "\\", "/")
}

// HasName reports whether the archive embedded a name for this entry.
func (id ID) HasName() bool {
	return id.Name != nil
}

// File is a single archived file: its identity, where its payload lives in
// the container, and whether that payload is compressed.
type File struct {
	ID         ID
	Compressed bool
	Offset     uint64
	Size       int
}

func (f File) String() string {
	return f.ID.String()
}

// Directory groups the files that share a directory hash. v001 archives
// have no directory concept; v10x readers always populate this.
type Directory struct {
	ID    ID
	Files []File
}

func (d Directory) String() string {
	return d.ID.String()
}
