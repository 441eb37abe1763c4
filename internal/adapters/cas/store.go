// Package cas implements the persistent tier of the result cache.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

// filenameHexLen is the number of hex characters of sha256(key) used as a filename.
const filenameHexLen = 8

// record is the on-disk shape of an entry. Key guards against filename prefix collisions.
type record struct {
	Key string `json:"key"`
	domain.CacheEntry
}

// Store implements ports.EntryStore using a file-per-key strategy.
type Store struct {
	dir string
}

// NewStore creates a new EntryStore backed by the directory at the given path.
// The directory is created lazily on the first Put.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, zerr.With(domain.ErrStoreCreateFailed, "reason", "empty directory")
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Get retrieves the entry stored under key.
func (s *Store) Get(key string) (*domain.CacheEntry, error) {
	filename := s.filename(key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", filename)
	}
	if rec.Key != key {
		return nil, nil
	}

	return &rec.CacheEntry, nil
}

// Put stores the entry under key.
func (s *Store) Put(key string, entry *domain.CacheEntry) error {
	if entry == nil {
		return nil
	}
	data, err := json.MarshalIndent(record{Key: key, CacheEntry: *entry}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	filename := s.filename(key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", filename)
	}

	return nil
}

// Purge removes every entry file from the store directory.
func (s *Store) Purge() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrStorePurgeFailed.Error())
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return zerr.Wrap(errors.Join(errs...), domain.ErrStorePurgeFailed.Error())
	}
	return nil
}

func (s *Store) filename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])[:filenameHexLen]+".json")
}

// Opener implements ports.EntryStoreOpener.
type Opener struct{}

// Open returns a Store rooted at dir.
func (Opener) Open(dir string) (ports.EntryStore, error) {
	return NewStore(dir)
}
