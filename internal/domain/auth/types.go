package auth

// Package auth contains domain-level types for the client session and route gating.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form so it round-trips through token claims and form values unchanged.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCandidate Role = "candidate"
)

// ParseRole maps a raw claim or form value to a Role.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleCandidate:
		return r, nil
	default:
		return "", fmt.Errorf("invalid role: %q (valid options: admin, candidate)", raw)
	}
}

// Credential is the opaque bearer token issued by the Auth API.
type Credential string

// String redacts the token so credentials never end up in logs by accident.
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[redacted]"
}

// Claims are the fields decoded from a Credential payload.
// They are advisory: the backend re-authorizes every request.
type Claims struct {
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the claims are expired at now (exp <= now).
func (c Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Identity is the user the current session belongs to.
type Identity struct {
	Subject   string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityFromClaims projects decoded claims onto an Identity.
func IdentityFromClaims(c Claims) Identity {
	return Identity{
		Subject:   c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		ExpiresAt: c.ExpiresAt,
	}
}

// Status is the lifecycle state of the client session.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Session is a point-in-time copy of the client's authentication state.
// Identity is non-nil iff Status is StatusAuthenticated.
type Session struct {
	Credential Credential
	Identity   *Identity
	Status     Status
	// Notice is a user-visible message left by the last state change (e.g. expiry mid-action).
	Notice string
}

// IsAuthenticated reports whether the session carries a live identity.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.Identity != nil
}

// IsSettled reports whether startup restoration has completed.
func (s Session) IsSettled() bool {
	return s.Status == StatusAuthenticated || s.Status == StatusAnonymous
}

// HasRole reports whether the session identity holds one of roles.
func (s Session) HasRole(roles ...Role) bool {
	if s.Identity == nil {
		return false
	}
	for _, r := range roles {
		if s.Identity.Role == r {
			return true
		}
	}
	return false
}
