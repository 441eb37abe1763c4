package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/polish/internal/adapters/fs"
	"go.trai.ch/polish/internal/core/domain"
)

func TestWorkspace_Discover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":            "<p>",
		"src/app.ts":            "let a",
		"src/app.go":            "package main",
		"src/styles/main.css":   "a{}",
		"dist/bundle.js":        "x",
		"docs/guide.md":         "# g",
		"config/deploy.yaml":    "a: 1",
		"config/notes.txt":      "n",
		".polish/cache/a.json":  "{}",
		"vendor/lib/styles.css": "b{}",
	})

	ws := fs.NewWorkspace(fs.NewWalker())
	got, err := ws.Discover(context.Background(), root, []string{"**/*"}, []string{"dist/**", ".polish/**", "vendor/**"})
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "config", "deploy.yaml"),
		filepath.Join(root, "docs", "guide.md"),
		filepath.Join(root, "index.html"),
		filepath.Join(root, "src", "app.ts"),
		filepath.Join(root, "src", "styles", "main.css"),
	}
	assert.Equal(t, want, got)
}

func TestWorkspace_Discover_PatternsAndDirectFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.css":        "",
		"src/b.css":    "",
		"src/c.js":     "",
		"other/d.css":  "",
		"notes.txt":    "",
		"lib/e.yaml":   "",
		"lib/sub/f.js": "",
	})

	ws := fs.NewWorkspace(fs.NewWalker())
	got, err := ws.Discover(context.Background(), root, []string{"src/*.css", "notes.txt", "lib", "./a.css"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.css"),
		filepath.Join(root, "lib", "e.yaml"),
		filepath.Join(root, "lib", "sub", "f.js"),
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "src", "b.css"),
	}, got)
}

func TestWorkspace_Discover_InvalidPattern(t *testing.T) {
	ws := fs.NewWorkspace(fs.NewWalker())
	_, err := ws.Discover(context.Background(), t.TempDir(), []string{"src/[.css"}, nil)
	require.ErrorContains(t, err, domain.ErrInvalidPattern.Error())
}

func TestWorkspace_Load(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.css":  "a{}\n",
		"b.html": "<p>\n",
	})

	ws := fs.NewWorkspace(fs.NewWalker())
	files, err := ws.Load(context.Background(), []string{
		filepath.Join(root, "a.css"),
		filepath.Join(root, "missing.css"),
		filepath.Join(root, "b.html"),
	})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, filepath.Join(root, "a.css"), files[0].Path)
	assert.Equal(t, "a{}\n", files[0].Content)
	assert.Equal(t, domain.LanguageCSS, files[0].Language)
	assert.Equal(t, int64(4), files[0].Size)
	assert.False(t, files[0].LastModified.IsZero())
	assert.Equal(t, domain.LanguageHTML, files[1].Language)
}

func TestWorkspace_Write(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.css")
	require.NoError(t, os.WriteFile(path, []byte("a{}"), 0o600))

	ws := fs.NewWorkspace(fs.NewWalker())
	require.NoError(t, ws.Write(path, "a {\n}\n"))

	//nolint:gosec // Test file with controlled path
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a {\n}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWorkspace_Write_MissingDir(t *testing.T) {
	ws := fs.NewWorkspace(fs.NewWalker())
	err := ws.Write(filepath.Join(t.TempDir(), "nope", "a.css"), "x")
	require.ErrorContains(t, err, domain.ErrFileWriteFailed.Error())
}
