package cas_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/polish/internal/adapters/cas"
	"go.trai.ch/polish/internal/core/domain"
)

func entryFile(dir, key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(dir, hex.EncodeToString(sum[:])[:8]+".json")
}

func TestStore_PutAndGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	key := domain.NewCacheKey(domain.OperationFormat, "a.css", "abc")
	entry := &domain.CacheEntry{
		Hash:      "abc",
		Format:    &domain.FormatResult{FilePath: "a.css", Formatted: "a {\n}\n", Changed: true},
		Timestamp: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Version:   domain.CacheSchemaVersion,
	}
	require.NoError(t, store.Put(key, entry))

	got, err := store.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Hash)
	assert.Equal(t, "a {\n}\n", got.Format.Formatted)
	assert.True(t, got.Timestamp.Equal(entry.Timestamp))
	assert.Nil(t, got.Lint)

	assert.FileExists(t, entryFile(dir, key))
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	key := domain.NewCacheKey(domain.OperationLint, "index.html", "xyz")

	store1, err := cas.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store1.Put(key, &domain.CacheEntry{
		Hash: "xyz",
		Lint: &domain.LintResult{FilePath: "index.html", Diagnostics: []domain.Diagnostic{
			{RuleID: "require-alt", Severity: domain.SeverityWarning, Message: "missing alt"},
		}, WarningCount: 1},
		Version: domain.CacheSchemaVersion,
	}))

	store2, err := cas.NewStore(dir)
	require.NoError(t, err)
	got, err := store2.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Lint.Diagnostics, 1)
	assert.Equal(t, "require-alt", got.Lint.Diagnostics[0].RuleID)
	assert.Equal(t, 1, got.Lint.WarningCount)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get("lint:nope:0")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	key := "lint:broken.css:1"
	require.NoError(t, os.WriteFile(entryFile(dir, key), []byte("{not json"), 0o600))

	got, err := store.Get(key)
	require.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
	assert.Nil(t, got)
}

func TestStore_GetForeignKey(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	key := "lint:a.css:1"
	require.NoError(t, os.WriteFile(entryFile(dir, key), []byte(`{"key":"lint:other.css:1","hash":"1"}`), 0o600))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_OmitZero(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	key := "format:zero.css:0"
	require.NoError(t, store.Put(key, &domain.CacheEntry{Hash: "0", Version: domain.CacheSchemaVersion}))

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(entryFile(dir, key))
	require.NoError(t, err)

	jsonStr := string(content)
	assert.NotContains(t, jsonStr, `"lint"`)
	assert.NotContains(t, jsonStr, `"format"`)
	assert.True(t, strings.Contains(jsonStr, `"version"`))
}

func TestStore_Purge(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put("lint:a:1", &domain.CacheEntry{Hash: "1"}))
	require.NoError(t, store.Put("lint:b:2", &domain.CacheEntry{Hash: "2"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o600))

	require.NoError(t, store.Purge())

	got, err := store.Get("lint:a:1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.FileExists(t, filepath.Join(dir, "README"))
}

func TestStore_PurgeMissingDir(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)
	require.NoError(t, store.Purge())
}

func TestNewStore_EmptyDir(t *testing.T) {
	_, err := cas.NewStore("")
	require.Error(t, err)
}

func TestOpener(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.Opener{}.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put("lint:x:1", &domain.CacheEntry{Hash: "1"}))
	assert.FileExists(t, entryFile(dir, "lint:x:1"))
}
