// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// SessionKey is the context key marking commands run inside an interactive shell.
type SessionKey struct{}

// WithSession returns a context marked as belonging to an interactive session.
// Commands run under it operate on the in-memory bank and never touch the
// working file implicitly.
func WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, SessionKey{}, true)
}

// InSession reports whether ctx belongs to an interactive session.
func InSession(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(SessionKey{}).(bool)
	return v
}
