package ast

import "regexp"

// Predicate reports whether the node at position i of t is selected.
type Predicate func(t *Tree, i int) bool

// AnyNode selects every node.
func AnyNode(_ *Tree, _ int) bool { return true }

// IsEntry selects entry nodes.
func IsEntry(t *Tree, i int) bool { return t.At(i).IsEntry() }

// IsComment selects comment nodes.
func IsComment(t *Tree, i int) bool { return t.At(i).IsComment() }

// IsBlank selects blank lines.
func IsBlank(t *Tree, i int) bool {
	n := t.At(i)
	return n != nil && n.Kind == KindBlank
}

// EntryNamed selects entries whose key is exactly key.
func EntryNamed(key string) Predicate {
	return func(t *Tree, i int) bool {
		n := t.At(i)
		return n.IsEntry() && n.Key == key
	}
}

// CommentMatching selects comments whose text matches re.
func CommentMatching(re *regexp.Regexp) Predicate {
	return func(t *Tree, i int) bool {
		n := t.At(i)
		return n.IsComment() && re.MatchString(n.Text)
	}
}

// FollowedBy selects nodes whose immediate next sibling satisfies next.
func FollowedBy(next Predicate) Predicate {
	return func(t *Tree, i int) bool {
		return i+1 < t.Len() && next(t, i+1)
	}
}

// PrecededBy selects nodes whose immediate previous sibling satisfies prev.
func PrecededBy(prev Predicate) Predicate {
	return func(t *Tree, i int) bool {
		return i > 0 && prev(t, i-1)
	}
}

// All selects nodes satisfying every predicate.
func All(preds ...Predicate) Predicate {
	return func(t *Tree, i int) bool {
		for _, p := range preds {
			if !p(t, i) {
				return false
			}
		}
		return true
	}
}

// Any selects nodes satisfying at least one predicate.
func Any(preds ...Predicate) Predicate {
	return func(t *Tree, i int) bool {
		for _, p := range preds {
			if p(t, i) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(t *Tree, i int) bool { return !p(t, i) }
}

// Same selects exactly the node n.
func Same(n *Node) Predicate {
	return func(t *Tree, i int) bool { return t.At(i) == n }
}
