package lens

import "github.com/joshuapare/sysctlkit/pkg/ast"

// Render serializes a tree back to file bytes in the encoding it was parsed
// from. It is the exact inverse of Parse for trees nobody mutated.
func Render(t *ast.Tree) []byte {
	return encodeOutput(t.AppendTo(nil), t.Encoding)
}
