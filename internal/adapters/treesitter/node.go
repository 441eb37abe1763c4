package treesitter

import (
	"context"

	"github.com/grindlemire/graft"
	sitter "github.com/smacker/go-tree-sitter"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the parser Graft node.
const NodeID graft.ID = "adapter.parser"

func init() {
	graft.Register(graft.Node[ports.Parser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Parser, error) {
			return NewParser(), nil
		},
	})
}

// node adapts a tree-sitter node to domain.Node.
type node struct {
	n   *sitter.Node
	src []byte
}

var _ domain.Node = (*node)(nil)

func (w *node) Kind() string {
	return w.n.Type()
}

func (w *node) Named() bool {
	return w.n.IsNamed()
}

func (w *node) Children() []domain.Node {
	count := int(w.n.ChildCount())
	if count == 0 {
		return nil
	}
	children := make([]domain.Node, 0, count)
	for i := range count {
		if c := w.n.Child(i); c != nil {
			children = append(children, &node{n: c, src: w.src})
		}
	}
	return children
}

func (w *node) Text() string {
	return w.n.Content(w.src)
}

func (w *node) Start() domain.Position {
	p := w.n.StartPoint()
	return domain.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (w *node) End() domain.Position {
	p := w.n.EndPoint()
	return domain.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

func (w *node) StartByte() int {
	return int(w.n.StartByte())
}

func (w *node) EndByte() int {
	return int(w.n.EndByte())
}
