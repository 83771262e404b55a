package ast

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

func render(t *Tree) string { return string(t.AppendTo(nil)) }

func sampleTree() *Tree {
	tree := New()
	tree.Append(NewComment("kernel.panic: reboot"))
	tree.Append(NewEntry("kernel.panic", "10"))
	tree.Append(NewBlank())
	tree.Append(NewEntry("vm.swappiness", "60"))
	tree.MarkClean()
	return tree
}

func TestNewTree(t *testing.T) {
	tree := New()
	require.Equal(t, 0, tree.Len())
	require.False(t, tree.Dirty())
	require.Nil(t, tree.At(0))
	require.Empty(t, tree.Match(AnyNode))
}

func TestAppendRendersDefaults(t *testing.T) {
	tree := sampleTree()
	require.Equal(t, "# kernel.panic: reboot\nkernel.panic = 10\n\nvm.swappiness = 60\n", render(tree))
}

func TestMatchPredicates(t *testing.T) {
	tree := sampleTree()

	entries := tree.Match(IsEntry)
	require.Len(t, entries, 2)
	require.Equal(t, "kernel.panic", entries[0].Key)
	require.Equal(t, "vm.swappiness", entries[1].Key)

	adj := tree.Match(All(IsComment, FollowedBy(EntryNamed("kernel.panic"))))
	require.Len(t, adj, 1)
	require.Equal(t, "kernel.panic: reboot", adj[0].Text)

	require.Empty(t, tree.Match(All(IsComment, FollowedBy(EntryNamed("vm.swappiness")))))
	require.Len(t, tree.Match(PrecededBy(IsBlank)), 1)
	require.Len(t, tree.Match(Not(IsEntry)), 2)
	require.Len(t, tree.Match(CommentMatching(regexp.MustCompile(`^kernel`))), 1)
	require.Nil(t, tree.First(EntryNamed("missing")))
	require.Len(t, tree.Match(Any(IsBlank, EntryNamed("vm.swappiness"))), 2)
	require.Empty(t, tree.Match(Any()))
}

func TestFirstLast(t *testing.T) {
	tree := New()
	a := tree.Append(NewEntry("k", "1"))
	b := tree.Append(NewEntry("k", "2"))
	require.Same(t, a, tree.First(EntryNamed("k")))
	require.Same(t, b, tree.Last(EntryNamed("k")))
}

func TestGetSet(t *testing.T) {
	tree := sampleTree()
	entry := tree.First(EntryNamed("kernel.panic"))

	v, err := tree.Get(entry)
	require.NoError(t, err)
	require.Equal(t, "10", v)

	require.NoError(t, tree.Set(entry, "20"))
	require.True(t, tree.Dirty())
	require.Contains(t, render(tree), "kernel.panic = 20\n")

	comment := tree.First(IsComment)
	require.NoError(t, tree.Set(comment, "kernel.panic: halt"))
	v, err = tree.Get(comment)
	require.NoError(t, err)
	require.Equal(t, "kernel.panic: halt", v)

	err = tree.Set(tree.First(IsBlank), "x")
	require.Error(t, err)
}

func TestGetSetDetachedNode(t *testing.T) {
	tree := sampleTree()
	detached := NewEntry("x", "1")

	_, err := tree.Get(detached)
	require.True(t, errors.Is(err, types.ErrAnchorNotFound))
	require.True(t, errors.Is(tree.Set(detached, "2"), types.ErrAnchorNotFound))
}

func TestInsertBeforeAfter(t *testing.T) {
	tree := sampleTree()
	anchor := tree.First(EntryNamed("vm.swappiness"))

	_, err := tree.Insert(anchor, NewEntry("a", "1"), true)
	require.NoError(t, err)
	_, err = tree.Insert(anchor, NewEntry("b", "2"), false)
	require.NoError(t, err)

	keys := make([]string, 0)
	for _, n := range tree.Match(IsEntry) {
		keys = append(keys, n.Key)
	}
	require.Equal(t, []string{"kernel.panic", "a", "vm.swappiness", "b"}, keys)
	require.True(t, tree.Dirty())
}

func TestInsertAnchorNotFound(t *testing.T) {
	tree := sampleTree()
	anchor := tree.First(EntryNamed("vm.swappiness"))
	require.True(t, tree.RemoveNode(anchor))

	_, err := tree.Insert(anchor, NewEntry("a", "1"), true)
	require.True(t, errors.Is(err, types.ErrAnchorNotFound))
	require.False(t, tree.RemoveNode(anchor))
}

func TestInsertAfterUnterminatedLine(t *testing.T) {
	last := &Node{Kind: KindEntry, Key: "a", Value: "1", Layout: Layout{Sep: "="}}
	tree := FromNodes([]*Node{last})
	require.Equal(t, "a=1", render(tree))

	tree.Append(NewEntry("b", "2"))
	require.Equal(t, "a=1\nb = 2\n", render(tree))

	// A final bare CR still needs an LF before the next line.
	cr := &Node{Kind: KindEntry, Key: "a", Value: "1", Layout: Layout{Sep: " = ", EOL: "\r"}}
	tree = FromNodes([]*Node{cr})
	tree.Append(NewEntry("b", "2"))
	require.Equal(t, "a = 1\r\nb = 2\n", render(tree))
}

func TestInsertUsesTreeNewline(t *testing.T) {
	tree := New()
	tree.Newline = CRLF
	tree.Append(NewEntry("a", "1"))
	require.Equal(t, "a = 1\r\n", render(tree))
}

func TestRemove(t *testing.T) {
	tree := sampleTree()

	// Positional predicates see the tree as it was before removal.
	n := tree.Remove(Any(
		All(IsComment, FollowedBy(EntryNamed("kernel.panic"))),
		EntryNamed("kernel.panic"),
	))
	require.Equal(t, 2, n)
	require.Equal(t, "\nvm.swappiness = 60\n", render(tree))
	require.True(t, tree.Dirty())

	tree.MarkClean()
	require.Equal(t, 0, tree.Remove(EntryNamed("kernel.panic")))
	require.False(t, tree.Dirty(), "no-op removal must not dirty the tree")
}

func TestNodeString(t *testing.T) {
	n := NewEntry("net.ipv4.ip_forward", "1")
	n.Layout.EOL = LF
	require.Equal(t, "net.ipv4.ip_forward = 1", n.String())
	require.Equal(t, LF, n.Layout.EOL)
	require.Equal(t, "entry", KindEntry.String())
}
