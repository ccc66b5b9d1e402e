package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr)
	assert.Equal(t, 6, cfg.HTTP.CompressionLevel)
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "message", cfg.API.ErrorMessagePath)
	assert.Equal(t, StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, "default", cfg.Storage.Key)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, "recruitweb:credential:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "/login", cfg.Auth.LoginPath)
	assert.Equal(t, "/unauthorized", cfg.Auth.UnauthorizedPath)
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("HTTP_COMPRESSION_ENABLED", "true")
	t.Setenv("HTTP_COMPRESSION_LEVEL", "12")
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("API_ERROR_MESSAGE_PATH", "error.detail")
	t.Setenv("STORAGE_BACKEND", "REDIS")
	t.Setenv("STORAGE_KEY", "kiosk-1")
	t.Setenv("REDIS_URI", "redis://cache:6379/2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_CLUSTER_NODES", "a:7000,b:7001")
	t.Setenv("AUTH_LOGIN_PATH", "/signin")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.CompressionEnabled)
	assert.Equal(t, 9, cfg.HTTP.CompressionLevel)
	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "error.detail", cfg.API.ErrorMessagePath)
	assert.Equal(t, StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "kiosk-1", cfg.Storage.Key)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URI)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"a:7000", "b:7001"}, cfg.Redis.ClusterNodes)
	assert.Equal(t, "/signin", cfg.Auth.LoginPath)
}

func TestAppConfig_InvalidStorageBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")

	var cfg AppConfig
	err := env.Parse(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid StorageBackend")
}

func TestAppConfig_DetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}

func TestStorageBackend_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    StorageBackend
		wantErr bool
	}{
		{in: "file", want: StorageBackendFile},
		{in: " Memory ", want: StorageBackendMemory},
		{in: "redis", want: StorageBackendRedis},
		{in: "", wantErr: true},
		{in: "postgres", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var b StorageBackend
			err := b.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b)
		})
	}
}

func TestSanitize_Guardrails(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 0}
	h.Sanitize()
	assert.Equal(t, 1, h.CompressionLevel)
	assert.Equal(t, "127.0.0.1:3000", h.Addr)
	assert.Equal(t, int64(10<<20), h.MaxUploadBytes)

	a := APIConfig{BaseURL: "  ", Timeout: -time.Second}
	a.Sanitize()
	assert.Equal(t, "http://localhost:5000/api", a.BaseURL)
	assert.Equal(t, 15*time.Second, a.Timeout)
	assert.Equal(t, "message", a.ErrorMessagePath)

	auth := AuthConfig{LoginPath: "https://evil.example/login", UnauthorizedPath: "//evil"}
	auth.Sanitize()
	assert.Equal(t, "/login", auth.LoginPath)
	assert.Equal(t, "/unauthorized", auth.UnauthorizedPath)

	r := RedisConfig{DB: -1}
	r.Sanitize()
	assert.Equal(t, 0, r.DB)
	assert.Equal(t, "recruitweb:credential:", r.KeyPrefix)
}
