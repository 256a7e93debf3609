// Command bsahash prints the on-disk hash bsa-kit would compute for a path
// under a chosen archive format's hashing scheme, useful for checking
// whether two names collide before building an archive.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bgrewell/usage"

	"github.com/elderscrolls-tools/bsa-kit/pkg/hash"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("bsahash"),
		usage.WithApplicationDescription("bsahash prints the hash bsa-kit computes for a path under the Morrowind (v001) or Oblivion+ (v10x) hashing scheme."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	versionTag := u.AddStringOption("", "version", "v105", "Hashing scheme to use: v001 or v10x (v103/v104/v105 all share one scheme)", "", nil)
	path := u.AddArgument(1, "path", "Path to hash", "")
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
		u.PrintError(fmt.Errorf("a path to hash must be provided"))
		os.Exit(1)
	}

	var h hash.Hash
	switch strings.ToLower(*versionTag) {
	case "v001", "001":
		h = hash.V001(*path)
	case "v103", "103", "v104", "104", "v105", "105", "v10x":
		h = hash.V10X(*path)
	default:
		u.PrintError(fmt.Errorf("unknown version %q", *versionTag))
		os.Exit(1)
	}

	fmt.Printf("%s\n", h)
}
