package localstore

import (
	"context"
	"sync"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

// MemoryStore keeps the credential in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	cred domainauth.Credential
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (domainauth.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == "" {
		return "", ports.ErrNoCredential
	}
	return s.cred, nil
}

func (s *MemoryStore) Save(_ context.Context, cred domainauth.Credential, _ domainauth.Claims) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = ""
	return nil
}
