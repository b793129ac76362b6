package domain

import "context"

type principalKey struct{}

// ContextPrincipal carries the authenticated identity through request context.
// It is attached by the auth middleware after token verification and a live
// store lookup, so UserID always references an existing row at resolve time.
type ContextPrincipal struct {
	UserID int64
	Email  string
}

// WithPrincipal stores a ContextPrincipal in the context.
func WithPrincipal(ctx context.Context, p ContextPrincipal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the ContextPrincipal from the context.
func PrincipalFromContext(ctx context.Context) (ContextPrincipal, bool) {
	p, ok := ctx.Value(principalKey{}).(ContextPrincipal)
	return p, ok
}
