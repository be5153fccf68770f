package httpx

import "context"

// Principal is the caller identified by a bearer token: either a user or a share.
type Principal struct {
	UserID string
	Share  string
}

// IsShare reports whether the principal is a share session.
func (p Principal) IsShare() bool { return p.Share != "" }

// principalKey is an unexported context key type to avoid collisions across packages.
type principalKey struct{}

// SetPrincipalInContext returns a child context that carries p.
func SetPrincipalInContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipalFromContext returns the principal from context and a boolean indicating presence.
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
