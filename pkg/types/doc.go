// Package types defines the shared vocabulary of sysctlkit: typed errors,
// the desired-state Resource record, and the Entry produced by enumeration.
//
// Design goals:
//   - Typed errors with stable categories (syntax/lock/not-found/...), so
//     callers branch with errors.Is on a kind rather than on message text.
//   - Values are opaque strings; nothing here validates sysctl namespaces.
//
// This package has no dependencies beyond the standard library.
package types
