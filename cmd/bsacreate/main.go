// Command bsacreate walks a directory tree and writes it out as a BSA
// archive in the requested format.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	"github.com/elderscrolls-tools/bsa-kit"
	"github.com/elderscrolls-tools/bsa-kit/pkg/option"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("bsacreate"),
		usage.WithApplicationDescription("bsacreate walks a directory tree and writes it out as a Bethesda Softworks Archive (BSA) file in the requested format."),
	)
	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	versionTag := u.AddStringOption("", "version", "v105", "Target archive format: v001, v103, v104, or v105", "", nil)
	compress := u.AddBooleanOption("", "compress", false, "Set the archive's default-compressed flag", "", nil)
	embedNames := u.AddBooleanOption("", "embed-file-names", false, "Embed each file's path before its payload (v104/v105 only)", "", nil)
	out := u.AddStringOption("o", "output", "", "Output archive path", "", nil)
	dirArg := u.AddArgument(1, "dir", "Directory tree to archive", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if dirArg == nil || *dirArg == "" {
		u.PrintError(fmt.Errorf("a source directory must be provided"))
		os.Exit(1)
	}

	target, err := parseTarget(*versionTag)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimRight(filepath.Base(*dirArg), string(filepath.Separator)) + ".bsa"
	}

	tree, fileCount, err := buildTree(*dirArg)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	spinner, spErr := yacspin.New(yacspin.Config{
		Frequency:     100 * time.Millisecond,
		CharSet:       yacspin.CharSets[9],
		Suffix:        fmt.Sprintf(" packing %d file(s)", fileCount),
		StopCharacter: "✓",
		StopMessage:   "done",
	})
	useSpinner := spErr == nil && term.IsTerminal(int(os.Stdout.Fd()))
	if useSpinner {
		_ = spinner.Start()
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer outFile.Close()

	writeOpts := []option.WriteOption{
		option.WithCompress(*compress),
		option.WithEmbedFileNames(*embedNames),
	}

	if err := bsa.Write(outFile, target, tree, writeOpts...); err != nil {
		if useSpinner {
			_ = spinner.StopFail()
		}
		u.PrintError(err)
		os.Exit(1)
	}
	if useSpinner {
		_ = spinner.Stop()
	}
	fmt.Printf("wrote %s (%d file(s), %s)\n", outPath, fileCount, target)
}

func parseTarget(tag string) (bsa.Target, error) {
	switch strings.ToLower(tag) {
	case "v001", "001":
		return bsa.TargetV001, nil
	case "v103", "103":
		return bsa.TargetV103, nil
	case "v104", "104":
		return bsa.TargetV104, nil
	case "v105", "105":
		return bsa.TargetV105, nil
	default:
		return 0, fmt.Errorf("unknown target version %q", tag)
	}
}

// buildTree walks root and groups files by their immediate parent directory
// relative to root, matching how BSA archives group entries into
// directories one level deep from the archive root.
func buildTree(root string) (bsa.Tree, int, error) {
	byDir := make(map[string][]bsa.File)
	var dirOrder []string
	var fileCount int

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(filepath.Dir(rel))
		if dir == "." {
			dir = ""
		}
		name := filepath.Base(rel)
		p := path
		if _, ok := byDir[dir]; !ok {
			dirOrder = append(dirOrder, dir)
		}
		byDir[dir] = append(byDir[dir], bsa.File{
			Name: name,
			Open: func() (io.ReadCloser, error) { return os.Open(p) },
		})
		fileCount++
		return nil
	})
	if err != nil {
		return bsa.Tree{}, 0, err
	}

	sort.Strings(dirOrder)
	tree := bsa.Tree{Dirs: make([]bsa.Dir, 0, len(dirOrder))}
	for _, dir := range dirOrder {
		tree.Dirs = append(tree.Dirs, bsa.Dir{Name: strings.ReplaceAll(dir, "/", "\\"), Files: byDir[dir]})
	}
	return tree, fileCount, nil
}
