package workspace

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// skippedDirs are never descended into.
var skippedDirs = []string{".git", ".jj", ".forge", "node_modules", "target"}

// Walker yields the files of a project tree.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker skipping directories matching ignores in
// addition to the built-in skipped directories.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: ignores}
}

// WalkFiles yields the paths of regular files under root, relative to root.
// maxDepth limits how many directory levels are entered; a negative value
// walks the whole tree and zero yields only files directly in root.
func (w *Walker) WalkFiles(root string, maxDepth int) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}

			if d.IsDir() {
				if rel == "." {
					return nil
				}
				if w.skip(d.Name()) {
					return filepath.SkipDir
				}
				if maxDepth >= 0 && depth(rel) > maxDepth {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() || w.skip(d.Name()) {
				return nil
			}
			if !yield(rel) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) skip(name string) bool {
	if slices.Contains(skippedDirs, name) {
		return true
	}
	for _, ignore := range w.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

// depth returns the number of directory levels of a relative directory path.
func depth(rel string) int {
	return strings.Count(rel, string(filepath.Separator)) + 1
}
