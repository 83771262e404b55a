// Package sysctl manages kernel parameter entries in sysctl.conf-style
// files.
//
// Editor holds the entry rules over a parsed tree: placement of new entries
// next to a commented-out directive, and comments bound to an entry by
// adjacency ("key: text" on the line directly above it). Provider runs each
// operation in its own locked session against a target file and, when a
// resource asks for it, mirrors values to the running kernel.
//
// Example:
//
//	p := sysctl.NewProvider(sysctl.Options{})
//	r := types.Resource{Name: "net.ipv4.ip_forward", Value: "1", Apply: true}
//	if err := p.Create(ctx, r); err != nil {
//	    return err
//	}
package sysctl
