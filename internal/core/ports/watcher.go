package ports

import (
	"context"
	"iter"

	"go.trai.ch/polish/internal/core/domain"
)

// WatchOp is the kind of change a WatchEvent reports.
type WatchOp uint8

// Watched operations.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// WatchEvent is a change to a path under the watched root.
type WatchEvent struct {
	Path      string
	Operation WatchOp
	// Language is the language inferred from Path's extension, empty when polish does not handle it.
	Language domain.Language
}

// Watcher reports changes below a root directory.
type Watcher interface {
	// Start begins watching root recursively until ctx is done or Stop is called.
	Start(ctx context.Context, root string) error
	// Stop releases the watcher. Events ends once it returns.
	Stop() error
	// Events yields changes in arrival order.
	Events() iter.Seq[WatchEvent]
}
