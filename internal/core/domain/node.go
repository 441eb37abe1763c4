package domain

// Node is a syntax tree node produced by a parsing front-end.
// Rules receive nodes whose Kind matches a handler key.
type Node interface {
	// Kind is the grammar type of the node, for example "declaration" or "start_tag".
	Kind() string
	// Named reports whether the node is a named grammar node rather than punctuation.
	Named() bool
	// Children returns the direct children in source order.
	Children() []Node
	// Text returns the source text spanned by the node.
	Text() string
	// Start is the 1-based position of the first byte.
	Start() Position
	// End is the 1-based position just past the last byte.
	End() Position
	// StartByte is the byte offset of the first byte.
	StartByte() int
	// EndByte is the byte offset just past the last byte.
	EndByte() int
}

// Walk visits root and its descendants in pre-order, calling visit for each node.
func Walk(root Node, visit func(Node)) {
	if root == nil {
		return
	}
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}
