package ast

import (
	"fmt"
	"strings"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// Tree is the ordered node list of one file.
//
// NOT thread-safe. A tree is owned by exactly one session.
type Tree struct {
	nodes []*Node
	dirty bool

	// Newline is the line ending given to inserted nodes. Parsers set it to
	// the ending the source file uses; the zero value means LF.
	Newline string

	// Encoding names the byte encoding the tree was decoded from, so it
	// can be re-encoded the same way. Owned by the lens package.
	Encoding string
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{nodes: make([]*Node, 0)}
}

// FromNodes builds a clean tree over nodes, in order. Parsers use it to hand
// over a freshly parsed document.
func FromNodes(nodes []*Node) *Tree {
	return &Tree{nodes: nodes}
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// At returns the node at position i, or nil when i is out of range.
func (t *Tree) At(i int) *Node {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i]
}

// Nodes returns a copy of the node list in document order.
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Index returns the position of n in the tree, or -1.
func (t *Tree) Index(n *Node) int {
	if n == nil {
		return -1
	}
	for i, cur := range t.nodes {
		if cur == n {
			return i
		}
	}
	return -1
}

// Dirty reports whether the tree changed since it was parsed or last saved.
func (t *Tree) Dirty() bool { return t.dirty }

// MarkClean clears the dirty flag after a successful save.
func (t *Tree) MarkClean() { t.dirty = false }

// Match returns every node satisfying p, in document order. No match is an
// empty slice, not an error.
func (t *Tree) Match(p Predicate) []*Node {
	var out []*Node
	for i := range t.nodes {
		if p(t, i) {
			out = append(out, t.nodes[i])
		}
	}
	return out
}

// First returns the first node satisfying p, or nil.
func (t *Tree) First(p Predicate) *Node {
	for i := range t.nodes {
		if p(t, i) {
			return t.nodes[i]
		}
	}
	return nil
}

// Last returns the last node satisfying p, or nil.
func (t *Tree) Last(p Predicate) *Node {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		if p(t, i) {
			return t.nodes[i]
		}
	}
	return nil
}

// Get returns the payload of n: the value of an entry, the text of a
// comment, "" for a blank line.
func (t *Tree) Get(n *Node) (string, error) {
	if t.Index(n) < 0 {
		return "", types.ErrAnchorNotFound
	}
	switch n.Kind {
	case KindEntry:
		return n.Value, nil
	case KindComment:
		return n.Text, nil
	default:
		return "", nil
	}
}

// Set replaces the payload of n and marks the tree dirty. Layout is kept,
// so only the payload of the line changes in the rendered output.
func (t *Tree) Set(n *Node, value string) error {
	if t.Index(n) < 0 {
		return types.ErrAnchorNotFound
	}
	switch n.Kind {
	case KindEntry:
		n.Value = value
	case KindComment:
		n.Text = value
	default:
		return fmt.Errorf("ast: cannot set payload of %s node", n.Kind)
	}
	t.dirty = true
	return nil
}

// Insert places n immediately before or after anchor and returns n.
// It fails with types.ErrAnchorNotFound when anchor is not in the tree.
func (t *Tree) Insert(anchor, n *Node, before bool) (*Node, error) {
	idx := t.Index(anchor)
	if idx < 0 {
		return nil, types.ErrAnchorNotFound
	}
	if !before {
		idx++
	}
	t.insertAt(idx, n)
	return n, nil
}

// Append adds n at the end of the tree and returns it.
func (t *Tree) Append(n *Node) *Node {
	t.insertAt(len(t.nodes), n)
	return n
}

func (t *Tree) insertAt(idx int, n *Node) {
	n.Layout.EOL = t.newline()
	// A node after an unterminated last line would be glued onto it. A
	// lone "\r" ends a line only at end of input.
	if idx > 0 {
		prev := &t.nodes[idx-1].Layout
		switch {
		case prev.EOL == "":
			prev.EOL = t.newline()
		case !strings.HasSuffix(prev.EOL, "\n"):
			prev.EOL += "\n"
		}
	}
	t.nodes = append(t.nodes, nil)
	copy(t.nodes[idx+1:], t.nodes[idx:])
	t.nodes[idx] = n
	t.dirty = true
}

// Remove deletes every node satisfying p and returns how many were removed.
// Predicates are evaluated against the tree as it was before removal, so
// positional predicates see the original neighbours.
func (t *Tree) Remove(p Predicate) int {
	doomed := make(map[*Node]bool)
	for i := range t.nodes {
		if p(t, i) {
			doomed[t.nodes[i]] = true
		}
	}
	if len(doomed) == 0 {
		return 0
	}
	kept := t.nodes[:0]
	for _, n := range t.nodes {
		if !doomed[n] {
			kept = append(kept, n)
		}
	}
	clear(t.nodes[len(kept):])
	t.nodes = kept
	t.dirty = true
	return len(doomed)
}

// RemoveNode deletes n. It reports whether n was in the tree.
func (t *Tree) RemoveNode(n *Node) bool {
	idx := t.Index(n)
	if idx < 0 {
		return false
	}
	t.nodes = append(t.nodes[:idx], t.nodes[idx+1:]...)
	t.dirty = true
	return true
}

// AppendTo renders the whole tree onto buf.
func (t *Tree) AppendTo(buf []byte) []byte {
	for _, n := range t.nodes {
		buf = n.AppendTo(buf)
	}
	return buf
}

func (t *Tree) newline() string {
	if t.Newline == "" {
		return LF
	}
	return t.Newline
}
