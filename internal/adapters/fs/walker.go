// Package fs provides file system adapters for discovering, hashing and writing source files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root as a slash-separated path relative to root.
// Version control directories and directories matched by an exclude pattern are not entered.
func (w *Walker) WalkFiles(root string, excludes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if w.shouldSkipDir(d.Name(), rel, excludes) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(rel) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir reports whether a directory can be pruned from the walk.
func (w *Walker) shouldSkipDir(name, rel string, excludes []string) bool {
	switch name {
	case ".git", ".jj", ".hg", ".svn":
		return true
	}
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
			return true
		}
	}
	return false
}
