package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindSyntax      ErrKind = iota // file content doesn't match the grammar
	ErrKindLockTimeout                // another session held the lock past the wait bound
	ErrKindAnchor                     // insert anchor is no longer part of the tree
	ErrKindNotFound                   // missing file/directory/entry
	ErrKindPermission                 // OS refused access
	ErrKindIO                         // read/write/rename failure
	ErrKindCommand                    // live sysctl mechanism failed or key unknown to the kernel
	ErrKindState                      // invalid operation for current state (e.g., closed session)
)

// String returns a short, stable name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindSyntax:
		return "syntax"
	case ErrKindLockTimeout:
		return "lock timeout"
	case ErrKindAnchor:
		return "anchor not found"
	case ErrKindNotFound:
		return "not found"
	case ErrKindPermission:
		return "permission denied"
	case ErrKindIO:
		return "io"
	case ErrKindCommand:
		return "command"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error of the same kind. This lets the
// sentinels below match any error of their category:
//
//	errors.Is(err, types.ErrNotFound)
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrSyntax indicates content the grammar cannot match.
	ErrSyntax = &Error{Kind: ErrKindSyntax, Msg: "syntax error"}
	// ErrLockTimeout indicates the advisory lock could not be acquired in time.
	ErrLockTimeout = &Error{Kind: ErrKindLockTimeout, Msg: "timed out waiting for file lock"}
	// ErrAnchorNotFound indicates an insert anchor that left the tree.
	ErrAnchorNotFound = &Error{Kind: ErrKindAnchor, Msg: "anchor node not found"}
	// ErrNotFound indicates a missing file, directory or entry.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrPermission indicates the OS denied access.
	ErrPermission = &Error{Kind: ErrKindPermission, Msg: "permission denied"}
	// ErrIO indicates a failed read or write.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o error"}
	// ErrCommand indicates the live sysctl mechanism failed.
	ErrCommand = &Error{Kind: ErrKindCommand, Msg: "sysctl command failed"}
	// ErrClosed indicates use of a session after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "session is closed"}
)

// Errorf builds a typed error of the given kind wrapping cause.
func Errorf(kind ErrKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// IsKind reports whether any error in err's chain is a *Error of kind.
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Kind == kind {
				return true
			}
			err = e.Err
			continue
		}
		return false
	}
	return false
}
