// Command bsainfo prints header and flag information about a BSA archive
// without walking its full directory listing.
package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/usage"

	"github.com/elderscrolls-tools/bsa-kit"
	"github.com/elderscrolls-tools/bsa-kit/pkg/header"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("bsainfo"),
		usage.WithApplicationDescription("bsainfo prints the header, archive flags, and entry counts of a Bethesda Softworks Archive (BSA) file."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print total payload size (and, for v10x, the compressed-file count)", "", nil)
	path := u.AddArgument(1, "path", "Path to the BSA file to inspect", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("path to a BSA file must be provided"))
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer f.Close()

	rd, err := bsa.Open(f)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	fmt.Printf("archive:  %s\n", *path)
	fmt.Printf("format:   %s\n", rd.Version())

	if v001Rd, ok := rd.V001(); ok {
		h := v001Rd.Header()
		fmt.Printf("files:    %d\n", h.FileCount)
		fmt.Printf("hash table offset: %d\n", h.OffsetHashTable)
		if *verbose {
			files, err := rd.List()
			if err != nil {
				u.PrintError(err)
				os.Exit(1)
			}
			var total int64
			for _, fl := range files.Files {
				total += int64(fl.Size)
			}
			fmt.Printf("total payload bytes: %d\n", total)
		}
		return
	}

	v10xRd, _ := rd.V10X()
	h := v10xRd.Header()
	fmt.Printf("directories: %d\n", h.DirCount)
	fmt.Printf("files:       %d\n", h.FileCount)
	fmt.Printf("flags:       %s\n", describeFlags(h.ArchiveFlags))

	if *verbose {
		listing, err := rd.List()
		if err != nil {
			u.PrintError(err)
			os.Exit(1)
		}
		var compressedCount int
		var total int64
		for _, dir := range listing.Dirs {
			for _, fl := range dir.Files {
				total += int64(fl.Size)
				if fl.Compressed {
					compressedCount++
				}
			}
		}
		fmt.Printf("compressed files: %d\n", compressedCount)
		fmt.Printf("total payload bytes (post-compression where applicable): %d\n", total)
	}
}

func describeFlags(flags header.ArchiveFlag) string {
	named := []struct {
		flag header.ArchiveFlag
		name string
	}{
		{header.IncludeDirectoryNames, "IncludeDirectoryNames"},
		{header.IncludeFileNames, "IncludeFileNames"},
		{header.CompressedArchive, "CompressedArchive"},
		{header.RetainDirectoryNames, "RetainDirectoryNames"},
		{header.RetainFileNames, "RetainFileNames"},
		{header.RetainFileNameOffsets, "RetainFileNameOffsets"},
		{header.Xbox360Archive, "Xbox360Archive"},
		{header.EmbedFileNames, "EmbedFileNames"},
		{header.XMemCodec, "XMemCodec"},
	}
	out := ""
	for _, n := range named {
		if flags.Has(n.flag) {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	if out == "" {
		return "(none)"
	}
	return out
}
