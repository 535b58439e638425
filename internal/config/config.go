package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backend names accepted for storage and events
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all configuration for the video catalog service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"VIDEOHUB_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"VIDEOHUB_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage configuration
	Storage StorageConfig

	// Event bus configuration
	Events EventsConfig

	// Redis configuration, used when any backend is redis
	Redis RedisConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// StorageConfig selects the video repository
type StorageConfig struct {
	Backend     string `env:"VIDEOHUB_STORAGE_BACKEND" envDefault:"memory"`
	SeedOnStart bool   `env:"VIDEOHUB_SEED_ON_START" envDefault:"true"`
}

// EventsConfig selects the event bus
type EventsConfig struct {
	Backend       string `env:"VIDEOHUB_EVENTS_BACKEND" envDefault:"memory"`
	ConsumerGroup string `env:"VIDEOHUB_EVENTS_CONSUMER_GROUP" envDefault:"videohub-ws"`
	StreamMaxLen  int64  `env:"VIDEOHUB_EVENTS_STREAM_MAX_LEN" envDefault:"10000"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASS"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"videohub"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ReadHeaderTimeout time.Duration `env:"TIMEOUT_READ_HEADER" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.HTTPPort == c.GRPCPort {
		return fmt.Errorf("HTTP and gRPC ports must differ: %d", c.HTTPPort)
	}

	if !validBackend(c.Storage.Backend) {
		return fmt.Errorf("unsupported storage backend: %s (must be memory or redis)", c.Storage.Backend)
	}
	if !validBackend(c.Events.Backend) {
		return fmt.Errorf("unsupported events backend: %s (must be memory or redis)", c.Events.Backend)
	}

	if c.UsesRedis() {
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required")
		}
		if c.Redis.KeyPrefix == "" {
			return fmt.Errorf("redis key prefix is required")
		}
	}

	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// UsesRedis reports whether any backend needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.Storage.Backend == BackendRedis || c.Events.Backend == BackendRedis
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func validBackend(name string) bool {
	return name == BackendMemory || name == BackendRedis
}
