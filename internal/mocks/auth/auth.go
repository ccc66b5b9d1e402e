package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI         = (*StubAuthAPI)(nil)
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
)

// StubAuthAPI simulates the Auth API. Without a func override it returns
// Credential (or Err) after Delay, honoring context cancellation.
type StubAuthAPI struct {
	LoginFunc  func(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error)
	SignupFunc func(ctx context.Context, in ports.SignupInput) (domainauth.Credential, error)

	Credential domainauth.Credential
	Err        error
	Delay      time.Duration

	logins  atomic.Int32
	signups atomic.Int32
}

func (s *StubAuthAPI) Login(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error) {
	s.logins.Add(1)
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	return s.respond(ctx)
}

func (s *StubAuthAPI) Signup(ctx context.Context, in ports.SignupInput) (domainauth.Credential, error) {
	s.signups.Add(1)
	if s.SignupFunc != nil {
		return s.SignupFunc(ctx, in)
	}
	return s.respond(ctx)
}

// LoginCalls returns how many times Login was invoked.
func (s *StubAuthAPI) LoginCalls() int { return int(s.logins.Load()) }

// SignupCalls returns how many times Signup was invoked.
func (s *StubAuthAPI) SignupCalls() int { return int(s.signups.Load()) }

func (s *StubAuthAPI) respond(ctx context.Context) (domainauth.Credential, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Credential, nil
}

// MemoryCredentialStore is an in-memory credential store for unit tests.
// It is safe for concurrent use.
type MemoryCredentialStore struct {
	mu     sync.Mutex
	cred   domainauth.Credential
	claims domainauth.Claims

	// SaveErr and ClearErr, when set, are returned instead of mutating the store.
	SaveErr  error
	ClearErr error

	// BeforeSave, when set, runs at the start of every Save outside the store lock.
	BeforeSave func()

	saves  int
	clears int
}

// NewMemoryCredentialStore creates a store, optionally seeded with a credential.
func NewMemoryCredentialStore(seed domainauth.Credential) *MemoryCredentialStore {
	return &MemoryCredentialStore{cred: seed}
}

func (m *MemoryCredentialStore) Load(_ context.Context) (domainauth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == "" {
		return "", ports.ErrNoCredential
	}
	return m.cred, nil
}

func (m *MemoryCredentialStore) Save(_ context.Context, cred domainauth.Credential, claims domainauth.Claims) error {
	if m.BeforeSave != nil {
		m.BeforeSave()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.cred = cred
	m.claims = claims
	return nil
}

func (m *MemoryCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.cred = ""
	m.claims = domainauth.Claims{}
	return nil
}

// Stored returns the currently stored credential, or "" when empty.
func (m *MemoryCredentialStore) Stored() domainauth.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

// StoredClaims returns the claims passed to the last successful Save.
func (m *MemoryCredentialStore) StoredClaims() domainauth.Claims {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claims
}

// Counts returns the number of Save and Clear calls.
func (m *MemoryCredentialStore) Counts() (saves, clears int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves, m.clears
}
