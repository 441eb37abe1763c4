package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/polish/internal/adapters/fs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/config":               "git config",
		"node_modules/lib/index.js": "x",
		"src/app.js":                "let a = 1",
		"src/styles/main.css":       "a{}",
		"README.md":                 "# Readme",
	})

	var got []string
	for rel := range fs.NewWalker().WalkFiles(root, []string{"node_modules/**"}) {
		got = append(got, rel)
	}
	slices.Sort(got)

	assert.Equal(t, []string{"README.md", "src/app.js", "src/styles/main.css"}, got)
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.css": "", "b.css": "", "c.css": ""})

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
