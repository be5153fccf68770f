package service

import "context"

type sessionContextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *UserSession) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (*UserSession, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*UserSession)
	return s, ok && s != nil
}
