// Package ast provides the in-memory tree representation of a sysctl-style
// configuration file.
//
// A Tree is an ordered list of nodes rooted at an implicit file node. Each
// node is an entry (`key = value`), a comment, or a blank line, and carries
// the Layout needed to render it exactly as it was parsed: indentation,
// comment markers, the separator around `=`, trailing text and line ending.
// Rendering an unmodified tree reproduces its source byte for byte; only
// nodes that were set, inserted or removed change the output.
//
// # Core Types
//
// Node is a tagged variant over Kind (entry, comment, blank). A *Node also
// serves as the reference to an addressed node: Get, Set and Insert take the
// pointer returned by Match, and fail with types.ErrAnchorNotFound once the
// node has been removed from the tree.
//
// Predicate selects nodes by position and content. Predicates compose
// (All, Not, FollowedBy, PrecededBy), which keeps structural rules such as
// "the comment immediately before entry K" as plain testable functions.
//
// # Usage Example
//
//	tree := ast.New()
//	entry := tree.Append(ast.NewEntry("kernel.panic", "10"))
//	if _, err := tree.Insert(entry, ast.NewComment("kernel.panic: reboot"), true); err != nil {
//		return err
//	}
//	for _, n := range tree.Match(ast.EntryNamed("kernel.panic")) {
//		fmt.Println(n.Value)
//	}
//
// Parsing and encoding live in the lens package; ast is grammar-agnostic
// beyond the three node kinds.
package ast
