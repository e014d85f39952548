// Package discover finds conversation exports for --all mode.
// It walks a directory tree breadth-first, keeping the file walking separate
// from the conversion pipeline.
package discover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// maxFiles bounds a batch run to avoid runaway walks (e.g. pointing --all
// at a home directory).
const maxFiles = 10000

// DiscoverAll returns every candidate file below root in breadth-first
// order, files within a directory sorted by name. Hidden directories are
// skipped. Symlinks are followed; a directory reached twice (including
// through a cycle) is listed once. A root that is itself a file is
// returned as-is.
func DiscoverAll(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	dirs := NewQueue()
	dirs.Add(NormalizePath(root))

	var files []string
	for dirs.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := dirs.Next()

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}

		var names []string
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			mode := e.Type()
			if mode&os.ModeSymlink != 0 {
				target, err := os.Stat(path)
				if err != nil {
					// dangling link
					continue
				}
				mode = target.Mode().Type()
			}
			switch {
			case mode.IsDir():
				if !IsHidden(e.Name()) {
					dirs.Add(path)
				}
			case mode.IsRegular() && IsCandidate(path):
				names = append(names, path)
			}
		}
		sort.Strings(names)

		files = append(files, names...)
		if len(files) > maxFiles {
			return nil, fmt.Errorf("more than %d files under %s", maxFiles, root)
		}
	}
	return files, nil
}
