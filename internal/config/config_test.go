package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.SeedOnStart)
	assert.Equal(t, BackendMemory, cfg.Events.Backend)
	assert.Equal(t, "videohub", cfg.Redis.KeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
	assert.False(t, cfg.UsesRedis())
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, ":9090", cfg.GetGRPCAddr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("VIDEOHUB_HTTP_PORT", "3000")
	t.Setenv("VIDEOHUB_STORAGE_BACKEND", "redis")
	t.Setenv("VIDEOHUB_SEED_ON_START", "false")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.False(t, cfg.Storage.SeedOnStart)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 750*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"VIDEOHUB_HTTP_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"VIDEOHUB_GRPC_PORT": "grpc"}},
		{name: "same ports", env: map[string]string{"VIDEOHUB_HTTP_PORT": "9090"}},
		{name: "unknown storage", env: map[string]string{"VIDEOHUB_STORAGE_BACKEND": "postgres"}},
		{name: "unknown events", env: map[string]string{"VIDEOHUB_EVENTS_BACKEND": "kafka"}},
		{name: "zero shutdown timeout", env: map[string]string{"TIMEOUT_SHUTDOWN": "0s"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
