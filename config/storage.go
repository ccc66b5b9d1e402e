package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where the session credential is persisted.
type StorageBackend string

const (
	// StorageBackendFile keeps the credential in a 0600 file.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis keeps the credential in Redis with a TTL.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendMemory keeps the credential in process memory (dev/tests).
	StorageBackendMemory StorageBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (s *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "file", "redis", "memory":
		*s = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: file, redis, memory)", v)
	}
}

// StorageConfig contains durable credential storage configuration.
type StorageConfig struct {
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// FilePath is the credential file used by the file backend.
	FilePath string `env:"FILE_PATH" envDefault:".recruit-web/credential"`

	// Key identifies this client instance in shared backends such as Redis.
	Key string `env:"KEY" envDefault:"default"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageBackendFile
	}
	if strings.TrimSpace(s.FilePath) == "" {
		s.FilePath = ".recruit-web/credential"
	}
	if strings.TrimSpace(s.Key) == "" {
		s.Key = "default"
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	KeyPrefix          string   `env:"KEY_PREFIX"           envDefault:"recruitweb:credential:"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	if r.DB < 0 {
		r.DB = 0
	}
	if r.KeyPrefix == "" {
		r.KeyPrefix = "recruitweb:credential:"
	}
}
