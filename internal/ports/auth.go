package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

// ErrNoCredential is returned by a CredentialStore that holds no credential.
var ErrNoCredential = errors.New("no stored credential")

// LoginInput carries the fields of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput carries the fields of POST /auth/signup.
type SignupInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domainauth.Role `json:"role"`
}

// AuthAPI is the external authentication service that issues credentials.
type AuthAPI interface {
	// Login exchanges an email/password pair for a credential.
	Login(ctx context.Context, in LoginInput) (domainauth.Credential, error)

	// Signup registers a new account and returns its credential.
	Signup(ctx context.Context, in SignupInput) (domainauth.Credential, error)
}

// CredentialStore is durable storage holding at most one credential for this client instance.
// Only the session manager reads or writes it.
type CredentialStore interface {
	// Load returns the stored credential or ErrNoCredential.
	Load(ctx context.Context) (domainauth.Credential, error)

	// Save replaces the stored credential. claims carry the expiry for stores that support TTLs.
	Save(ctx context.Context, cred domainauth.Credential, claims domainauth.Claims) error

	// Clear removes the stored credential. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// TokenDecoder extracts claims from a credential without verifying its signature.
type TokenDecoder interface {
	Decode(cred domainauth.Credential) (domainauth.Claims, error)
}
