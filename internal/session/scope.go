package session

import "context"

type scopeKey struct{}

// scope identifies one logical operation. Pointer identity is what matters;
// the field keeps distinct scopes from sharing an address.
type scope struct{ _ int }

// WithScope returns a context that starts a new logical operation. Sessions
// opened with it (or a context derived from it) are shared by later opens
// of the same file and lens within the same operation.
func WithScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{})
}

// InScope reports whether ctx carries an operation scope.
func InScope(ctx context.Context) bool {
	return scopeFrom(ctx) != nil
}

func scopeFrom(ctx context.Context) *scope {
	sc, _ := ctx.Value(scopeKey{}).(*scope)
	return sc
}
