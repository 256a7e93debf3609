// Command bsaextract streams the contents of a BSA archive to disk, with
// optional glob include/exclude filtering and a terminal progress spinner.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgrewell/usage"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	"github.com/elderscrolls-tools/bsa-kit"
	"github.com/elderscrolls-tools/bsa-kit/pkg/entry"
)

type extractItem struct {
	relPath string
	file    entry.File
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("bsaextract"),
		usage.WithApplicationDescription("bsaextract extracts the contents of a Bethesda Softworks Archive (BSA) file to a directory, optionally filtered by glob patterns."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	include := u.AddStringOption("", "include", "", "Comma-separated glob patterns; only matching entries are extracted", "", nil)
	exclude := u.AddStringOption("", "exclude", "", "Comma-separated glob patterns; matching entries are skipped", "", nil)
	path := u.AddArgument(1, "path", "Path to the BSA file to extract", "")
	outDir := u.AddArgument(2, "outdir", "Directory to extract into", "./extracted")
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
	if *include != "" && *exclude != "" {
		u.PrintError(fmt.Errorf("--include and --exclude are mutually exclusive"))
		os.Exit(1)
	}

	includes := splitGlobs(*include)
	excludes := splitGlobs(*exclude)

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

	items, err := gatherItems(rd)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	items = filterItems(items, includes, excludes)

	spinner, err := yacspin.New(yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " extracting",
		SuffixAutoColon: true,
		StopCharacter:   "✓",
		StopMessage:     "done",
	})
	useSpinner := err == nil && term.IsTerminal(int(os.Stdout.Fd()))
	if useSpinner {
		_ = spinner.Start()
	}

	for i, item := range items {
		if useSpinner {
			spinner.Message(fmt.Sprintf("%d/%d %s", i+1, len(items), item.relPath))
		}
		if err := extractOne(rd, *outDir, item); err != nil {
			if useSpinner {
				_ = spinner.StopFail()
			}
			u.PrintError(fmt.Errorf("extracting %s: %w", item.relPath, err))
			os.Exit(1)
		}
	}
	if useSpinner {
		_ = spinner.Stop()
	}
	fmt.Printf("extracted %d file(s) to %s\n", len(items), *outDir)
}

func gatherItems(rd *bsa.Reader) ([]extractItem, error) {
	listing, err := rd.List()
	if err != nil {
		return nil, err
	}
	var items []extractItem
	if len(listing.Dirs) == 0 {
		for _, file := range listing.Files {
			items = append(items, extractItem{relPath: file.ID.String(), file: file})
		}
		return items, nil
	}
	for _, dir := range listing.Dirs {
		for _, file := range dir.Files {
			items = append(items, extractItem{relPath: dir.ID.String() + "/" + file.ID.String(), file: file})
		}
	}
	return items, nil
}

func filterItems(items []extractItem, includes, excludes []string) []extractItem {
	if len(includes) == 0 && len(excludes) == 0 {
		return items
	}
	var out []extractItem
	for _, item := range items {
		if len(includes) > 0 && !matchesAny(includes, item.relPath) {
			continue
		}
		if len(excludes) > 0 && matchesAny(excludes, item.relPath) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesAny(globs []string, name string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
	}
	return false
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func extractOne(rd *bsa.Reader, outDir string, item extractItem) error {
	dest := filepath.Join(outDir, filepath.FromSlash(item.relPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	return rd.Extract(item.file, out)
}
