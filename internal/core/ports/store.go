package ports

import "go.trai.ch/polish/internal/core/domain"

// EntryStore defines the persistent tier of the result cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EntryStore interface {
	// Get retrieves the entry stored under key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.CacheEntry, error)

	// Put stores the entry under key.
	Put(key string, entry *domain.CacheEntry) error

	// Purge removes every stored entry.
	Purge() error
}

// EntryStoreOpener opens the persistent tier rooted at a directory.
type EntryStoreOpener interface {
	Open(dir string) (EntryStore, error)
}
