package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recruitdesk/recruit-web/config"
	"github.com/recruitdesk/recruit-web/internal/adapters/localstore"
	redisadapter "github.com/recruitdesk/recruit-web/internal/adapters/redis"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

// StorageDeps groups dependencies for credential store selection.
type StorageDeps struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// CredentialStore pairs the selected store with a release function for the
// resources it holds. Close is never nil.
type CredentialStore struct {
	Store ports.CredentialStore
	Close func() error
}

func noopClose() error { return nil }

// BuildCredentialStore selects the durable credential store named by STORAGE_BACKEND.
func BuildCredentialStore(ctx context.Context, deps StorageDeps) (CredentialStore, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch deps.Storage.Backend {
	case config.StorageBackendMemory:
		logger.Warn("credential store is in-memory; sessions will not survive restarts")
		return CredentialStore{Store: localstore.NewMemoryStore(), Close: noopClose}, nil

	case config.StorageBackendRedis:
		client, err := ConnectRedis(ctx, RedisOptions{Config: deps.Redis, Logger: logger})
		if err != nil {
			return CredentialStore{}, fmt.Errorf("connect redis: %w", err)
		}
		store, err := redisadapter.NewCredentialStore(redisadapter.CredentialStoreOptions{
			Client:    client,
			Prefix:    deps.Redis.KeyPrefix,
			ClientKey: deps.Storage.Key,
		})
		if err != nil {
			_ = client.Close()
			return CredentialStore{}, fmt.Errorf("create redis credential store: %w", err)
		}
		logger.Info("credential store ready", "backend", "redis", "key", deps.Storage.Key)
		return CredentialStore{Store: store, Close: client.Close}, nil

	case config.StorageBackendFile, "":
		store, err := localstore.NewFileStore(deps.Storage.FilePath)
		if err != nil {
			return CredentialStore{}, fmt.Errorf("create file credential store: %w", err)
		}
		logger.Info("credential store ready", "backend", "file", "path", store.Path())
		return CredentialStore{Store: store, Close: noopClose}, nil

	default:
		return CredentialStore{}, fmt.Errorf("unsupported storage backend %q", deps.Storage.Backend)
	}
}
