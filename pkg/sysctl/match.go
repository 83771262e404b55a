package sysctl

import (
	"regexp"
	"strings"

	"github.com/joshuapare/sysctlkit/pkg/ast"
)

// commentPrefix is the marker binding a comment to the entry below it.
func commentPrefix(key string) string { return key + ":" }

// commentText formats the stored comment for key.
func commentText(key, text string) string { return commentPrefix(key) + " " + text }

// stripComment returns the free text of a bound comment.
func stripComment(key, text string) string {
	return strings.TrimLeft(strings.TrimPrefix(text, commentPrefix(key)), " \t")
}

// prefixedComment selects comments whose text starts with "key:".
func prefixedComment(key string) ast.Predicate {
	prefix := commentPrefix(key)
	return func(t *ast.Tree, i int) bool {
		n := t.At(i)
		return n.IsComment() && strings.HasPrefix(n.Text, prefix)
	}
}

// commentFor selects the comment bound to any entry named key: it must be
// the entry's immediate predecessor and carry the "key:" prefix.
func commentFor(key string) ast.Predicate {
	return ast.All(prefixedComment(key), ast.FollowedBy(ast.EntryNamed(key)))
}

// commentOf selects the comment bound to the specific entry node.
func commentOf(entry *ast.Node) ast.Predicate {
	return ast.All(prefixedComment(entry.Key), ast.FollowedBy(ast.Same(entry)))
}

// disabledMarker selects comments that look like a commented-out directive
// for key: the key itself, then end of text or a character that cannot
// continue a key.
func disabledMarker(key string) ast.Predicate {
	return ast.CommentMatching(disabledPattern(key))
}

func disabledPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(key) + `([^A-Za-z0-9_.\-/].*)?$`)
}
