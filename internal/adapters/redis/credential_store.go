package redis

// Package redis provides the Redis-backed credential store.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

var _ ports.CredentialStore = (*CredentialStore)(nil)

const defaultPrefix = "recruitweb:credential:"

// CredentialStore keeps the client instance's credential under a single Redis key.
// The key's TTL follows the token expiry so Redis drops it when the token dies.
type CredentialStore struct {
	client redis.UniversalClient
	key    string
	now    func() time.Time
}

// CredentialStoreOptions configures NewCredentialStore.
type CredentialStoreOptions struct {
	Client redis.UniversalClient
	// Prefix namespaces keys; defaults to "recruitweb:credential:".
	Prefix string
	// ClientKey identifies this client instance within the prefix.
	ClientKey string
	Now       func() time.Time
}

// NewCredentialStore creates a Redis-based credential store.
func NewCredentialStore(opts CredentialStoreOptions) (*CredentialStore, error) {
	if opts.Client == nil {
		return nil, errors.New("redis client is required")
	}
	if opts.ClientKey == "" {
		return nil, errors.New("client key cannot be empty")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CredentialStore{client: opts.Client, key: prefix + opts.ClientKey, now: now}, nil
}

func (s *CredentialStore) Load(ctx context.Context) (domainauth.Credential, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNoCredential
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if data == "" {
		return "", ports.ErrNoCredential
	}
	return domainauth.Credential(data), nil
}

func (s *CredentialStore) Save(ctx context.Context, cred domainauth.Credential, claims domainauth.Claims) error {
	if cred == "" {
		return errors.New("credential cannot be empty")
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("credential is expired")
	}
	if err := s.client.Set(ctx, s.key, string(cred), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
