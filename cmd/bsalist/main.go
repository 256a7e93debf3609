// Command bsalist prints the directory and file listing of a BSA archive.
package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/usage"

	"github.com/elderscrolls-tools/bsa-kit"
	"github.com/elderscrolls-tools/bsa-kit/pkg/entry"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("bsalist"),
		usage.WithApplicationDescription("bsalist prints every file (and, for v10x archives, directory) contained in a Bethesda Softworks Archive (BSA) file."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	attrs := u.AddBooleanOption("a", "attributes", false, "Print compressed flag, size, and offset alongside each entry", "", nil)
	path := u.AddArgument(1, "path", "Path to the BSA file to list", "")
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

	listing, err := rd.List()
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	if len(listing.Dirs) == 0 {
		for _, file := range listing.Files {
			printEntry(file.ID.String(), file, *attrs)
		}
		return
	}
	for _, dir := range listing.Dirs {
		for _, file := range dir.Files {
			name := dir.ID.String() + "/" + file.ID.String()
			printEntry(name, file, *attrs)
		}
	}
}

func printEntry(name string, file entry.File, attrs bool) {
	if !attrs {
		fmt.Println(name)
		return
	}
	fmt.Printf("%-60s  compressed=%-5v  size=%-10d  offset=%d\n", name, file.Compressed, file.Size, file.Offset)
}
