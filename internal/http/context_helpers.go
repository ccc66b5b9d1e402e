package httpx

import (
	"context"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries a snapshot of the session.
func SetSessionInContext(ctx context.Context, s domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSessionFromContext returns the session snapshot placed by LoadSession or RequireRoles.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return s, ok
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	s, ok := GetSessionFromContext(ctx)
	if !ok || s.Identity == nil {
		return nil, false
	}
	id := *s.Identity
	return &id, true
}

// IsAnonymous reports whether the request context carries no authenticated identity.
func IsAnonymous(ctx context.Context) bool {
	_, ok := IdentityFromContext(ctx)
	return !ok
}
