package sysctl

import (
	"strings"

	"github.com/joshuapare/sysctlkit/pkg/ast"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// Editor applies entry operations to one parsed file. It only mutates the
// tree; persisting is up to the caller's session.
//
// A key may appear more than once in a malformed file. Reads address the
// last occurrence, which is the one that takes effect when the file is
// applied top to bottom.
type Editor struct {
	tree *ast.Tree
}

// NewEditor wraps tree.
func NewEditor(tree *ast.Tree) *Editor {
	return &Editor{tree: tree}
}

// Tree returns the edited tree.
func (e *Editor) Tree() *ast.Tree { return e.tree }

// Exists reports whether an entry named key is present.
func (e *Editor) Exists(key string) bool {
	return e.tree.First(ast.EntryNamed(key)) != nil
}

// Read returns the stored value of key, or types.ErrNotFound.
func (e *Editor) Read(key string) (string, error) {
	n, err := e.entry(key)
	if err != nil {
		return "", err
	}
	return e.tree.Get(n)
}

// Create adds key = value. The entry is placed just before the first
// comment that disables key (e.g. "# key = 1") so it is revived where the
// old directive lived, otherwise at the end of the file. A non-empty
// comment is stored as "key: comment" on the line above the entry.
//
// An existing key is updated in place instead of duplicated: its value is
// set and a non-empty comment replaces the bound one.
func (e *Editor) Create(key, value, comment string) error {
	if err := validate(key, value, comment); err != nil {
		return err
	}
	if e.Exists(key) {
		if _, err := e.SetValue(key, value); err != nil {
			return err
		}
		if comment == "" {
			return nil
		}
		return e.SetComment(key, comment)
	}
	entry := ast.NewEntry(key, value)
	if marker := e.tree.First(disabledMarker(key)); marker != nil {
		if _, err := e.tree.Insert(marker, entry, true); err != nil {
			return err
		}
	} else {
		e.tree.Append(entry)
	}
	if comment == "" {
		return nil
	}
	_, err := e.tree.Insert(entry, ast.NewComment(commentText(key, comment)), true)
	return err
}

// SetValue sets every occurrence of key to value. An absent key is created
// as by Create without a comment; created reports that case.
func (e *Editor) SetValue(key, value string) (created bool, err error) {
	if err := validate(key, value, ""); err != nil {
		return false, err
	}
	entries := e.tree.Match(ast.EntryNamed(key))
	if len(entries) == 0 {
		return true, e.Create(key, value, "")
	}
	for _, n := range entries {
		if n.Value == value {
			continue
		}
		if err := e.tree.Set(n, value); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Delete removes every entry named key together with its bound comment and
// returns the number of nodes removed. Other comments stay.
func (e *Editor) Delete(key string) int {
	return e.tree.Remove(ast.Any(commentFor(key), ast.EntryNamed(key)))
}

// Comment returns the free text of the comment bound to key, or "" when
// there is none or the key is absent.
func (e *Editor) Comment(key string) string {
	n := e.tree.Last(ast.EntryNamed(key))
	if n == nil {
		return ""
	}
	return e.commentText(n)
}

// SetComment binds text to key, reusing the existing bound comment when
// there is one. An empty text removes the bound comment. The key must
// exist.
func (e *Editor) SetComment(key, text string) error {
	if err := validate(key, "", text); err != nil {
		return err
	}
	entry, err := e.entry(key)
	if err != nil {
		return err
	}
	if text == "" {
		e.tree.Remove(commentOf(entry))
		return nil
	}

	want := commentText(key, text)
	c := e.tree.First(commentOf(entry))
	if c == nil {
		_, err := e.tree.Insert(entry, ast.NewComment(want), true)
		return err
	}
	if c.Text == want {
		return nil
	}
	return e.tree.Set(c, want)
}

// Entries lists every entry in document order with its bound comment.
// Duplicates are reported once per occurrence.
func (e *Editor) Entries() []types.Entry {
	nodes := e.tree.Match(ast.IsEntry)
	out := make([]types.Entry, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, types.Entry{
			Name:    n.Key,
			Value:   n.Value,
			Comment: e.commentText(n),
		})
	}
	return out
}

func (e *Editor) entry(key string) (*ast.Node, error) {
	n := e.tree.Last(ast.EntryNamed(key))
	if n == nil {
		return nil, types.Errorf(types.ErrKindNotFound, nil, "sysctl: no entry %q", key)
	}
	return n, nil
}

func (e *Editor) commentText(entry *ast.Node) string {
	c := e.tree.First(commentOf(entry))
	if c == nil {
		return ""
	}
	return stripComment(entry.Key, c.Text)
}

// validate rejects input that could not be written back as a single line
// and re-read as the same entry.
func validate(key, value, comment string) error {
	switch {
	case key == "":
		return types.Errorf(types.ErrKindSyntax, nil, "sysctl: empty key")
	case strings.ContainsAny(key, " \t=#;\r\n") || strings.HasPrefix(key, "-"):
		return types.Errorf(types.ErrKindSyntax, nil, "sysctl: invalid key %q", key)
	case strings.ContainsAny(value, "\r\n"):
		return types.Errorf(types.ErrKindSyntax, nil, "sysctl: value for %s spans lines", key)
	case strings.ContainsAny(comment, "\r\n"):
		return types.Errorf(types.ErrKindSyntax, nil, "sysctl: comment for %s spans lines", key)
	}
	return nil
}
