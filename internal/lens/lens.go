// Package lens maps sysctl-style configuration files to ast trees and back.
//
// A lens is a named grammar. Sessions open files through a lens id so the
// same machinery can serve other line-oriented formats later; today the
// only registered lens is Sysctl, covering sysctl.conf and sysctl.d files:
//
//	key = value        entry (whitespace around '=' is free, kept verbatim)
//	-key = value       entry whose write failures systemd-sysctl ignores
//	# text / ; text    comment
//	                   blank line
//
// Values are opaque and run to the end of the line; trailing whitespace is
// layout. UTF-8 BOMs are kept and UTF-16 files are decoded and re-encoded.
package lens

import (
	"github.com/joshuapare/sysctlkit/pkg/ast"
	"github.com/joshuapare/sysctlkit/pkg/types"
)

// SysctlID is the id of the sysctl.conf grammar.
const SysctlID = "Sysctl.lns"

// Lens is a grammar that parses bytes into a tree and renders it back.
type Lens struct {
	ID string

	// AllowMissing makes a missing file parse as empty content.
	AllowMissing bool

	parse  func([]byte) (*ast.Tree, error)
	render func(*ast.Tree) []byte
}

// Parse converts file content into a tree.
func (l *Lens) Parse(data []byte) (*ast.Tree, error) { return l.parse(data) }

// Render converts a tree into file content.
func (l *Lens) Render(t *ast.Tree) []byte { return l.render(t) }

// Sysctl is the sysctl.conf lens.
var Sysctl = &Lens{
	ID:           SysctlID,
	AllowMissing: true,
	parse:        Parse,
	render:       Render,
}

var registry = map[string]*Lens{
	SysctlID: Sysctl,
}

// Lookup returns the lens registered under id.
func Lookup(id string) (*Lens, error) {
	l, ok := registry[id]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, nil, "lens: unknown lens %q", id)
	}
	return l, nil
}
