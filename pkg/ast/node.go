package ast

import "fmt"

// Kind tags the variant held by a Node.
type Kind uint8

const (
	KindBlank Kind = iota
	KindComment
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindEntry:
		return "entry"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Layout records everything around a node's payload that must survive a
// round trip untouched.
type Layout struct {
	Indent   string // leading whitespace
	Marker   string // comment: marker plus following whitespace ("# "); entry: optional "-" prefix
	Sep      string // entry: text between key and value (" = ")
	Trailing string // trailing whitespace
	EOL      string // line ending; "" only for an unterminated final line
}

// Node is one line of the file.
type Node struct {
	Kind   Kind
	Key    string // entry key
	Value  string // entry value (opaque)
	Text   string // comment text without marker
	Layout Layout
}

// NewEntry returns an unattached entry node with default formatting.
// Its line ending is assigned when it is inserted into a tree.
func NewEntry(key, value string) *Node {
	return &Node{
		Kind:   KindEntry,
		Key:    key,
		Value:  value,
		Layout: Layout{Sep: DefaultSeparator},
	}
}

// NewComment returns an unattached comment node.
func NewComment(text string) *Node {
	return &Node{
		Kind:   KindComment,
		Text:   text,
		Layout: Layout{Marker: DefaultCommentMarker},
	}
}

// NewBlank returns an unattached blank line.
func NewBlank() *Node {
	return &Node{Kind: KindBlank}
}

// IsEntry reports whether n is an entry node.
func (n *Node) IsEntry() bool { return n != nil && n.Kind == KindEntry }

// IsComment reports whether n is a comment node.
func (n *Node) IsComment() bool { return n != nil && n.Kind == KindComment }

// AppendTo renders the node, line ending included, onto buf.
func (n *Node) AppendTo(buf []byte) []byte {
	buf = append(buf, n.Layout.Indent...)
	switch n.Kind {
	case KindEntry:
		buf = append(buf, n.Layout.Marker...)
		buf = append(buf, n.Key...)
		buf = append(buf, n.Layout.Sep...)
		buf = append(buf, n.Value...)
	case KindComment:
		buf = append(buf, n.Layout.Marker...)
		buf = append(buf, n.Text...)
	}
	buf = append(buf, n.Layout.Trailing...)
	return append(buf, n.Layout.EOL...)
}

// String renders the node without its line ending.
func (n *Node) String() string {
	c := *n
	c.Layout.EOL = ""
	return string(c.AppendTo(nil))
}
