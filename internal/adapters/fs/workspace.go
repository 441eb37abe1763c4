package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Workspace = (*Workspace)(nil)

// loadConcurrency bounds the number of files read at once.
const loadConcurrency = 16

// Workspace implements ports.Workspace on the local file system.
type Workspace struct {
	walker *Walker
}

// NewWorkspace creates a new Workspace.
func NewWorkspace(walker *Walker) *Workspace {
	return &Workspace{walker: walker}
}

// Discover expands include patterns relative to root.
// A pattern naming an existing file selects that file even when its extension is not recognised,
// so the caller can report it. A pattern naming a directory selects everything below it.
func (w *Workspace) Discover(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{"**/*"}
	}

	var patterns []string
	var direct []string
	for _, p := range include {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, zerr.With(domain.ErrInvalidPattern, "pattern", p)
		}
		target := p
		if !filepath.IsAbs(target) {
			target = filepath.Join(root, p)
		}
		info, err := os.Stat(target)
		switch {
		case err == nil && info.IsDir():
			rel, relErr := filepath.Rel(root, target)
			if relErr != nil {
				rel = p
			}
			patterns = append(patterns, filepath.ToSlash(filepath.Join(rel, "**", "*")))
		case err == nil:
			direct = append(direct, target)
		default:
			patterns = append(patterns, filepath.ToSlash(filepath.Clean(p)))
		}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, path := range direct {
		add(path)
	}

	if len(patterns) > 0 {
		for rel := range w.walker.WalkFiles(root, exclude) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if _, ok := domain.LanguageForPath(rel); !ok {
				continue
			}
			if !matchAny(patterns, rel) || matchAny(exclude, rel) {
				continue
			}
			add(filepath.Join(root, filepath.FromSlash(rel)))
		}
	}

	slices.Sort(out)
	return out, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Load reads the given files concurrently. Files that cannot be read are omitted.
// The result keeps the order of paths.
func (w *Workspace) Load(ctx context.Context, paths []string) ([]domain.SourceFile, error) {
	loaded := make([]*domain.SourceFile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := readSource(path)
			if err != nil {
				return nil
			}
			loaded[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]domain.SourceFile, 0, len(paths))
	for _, f := range loaded {
		if f != nil {
			files = append(files, *f)
		}
	}
	return files, nil
}

func readSource(path string) (*domain.SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}
	if info.IsDir() {
		return nil, zerr.With(domain.ErrFileReadFailed, "path", path)
	}
	//nolint:gosec // Path comes from discovery under the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "path", path)
	}
	file := domain.NewSourceFile(path, string(data))
	file.Size = info.Size()
	file.LastModified = info.ModTime()
	return &file, nil
}

// Write replaces path with content through a temporary file in the same directory and a rename.
// The original permissions are preserved when the file already exists.
func (w *Workspace) Write(path, content string) error {
	perm := fs.FileMode(domain.FilePerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".polish-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return zerr.With(zerr.Wrap(err, domain.ErrFileWriteFailed.Error()), "path", path)
	}
	return nil
}
