package config

import (
	"time"

	redisclient "github.com/vietddude/namecheck/internal/infra/redis"
	"github.com/vietddude/namecheck/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Client   ClientConfig       `yaml:"client"`
	Server   ServerConfig       `yaml:"server"`
	Redis    redisclient.Config `yaml:"redis"`
	Logging  LoggingConfig      `yaml:"logging"`
	Database postgres.Config    `yaml:"database"`
}

// ClientConfig holds settings for the availability client.
type ClientConfig struct {
	Name    string        `yaml:"name"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

// RetryConfig holds the retry policy for server errors.
type RetryConfig struct {
	MaxAttempts     int           `yaml:"max_attempts"`
	Delay           time.Duration `yaml:"delay"`
	HonorRetryAfter bool          `yaml:"honor_retry_after"` // default false: Retry-After is logged only
	MaxDelay        time.Duration `yaml:"max_delay"`
}

// ServerConfig holds settings for the availability server.
type ServerConfig struct {
	Port   int         `yaml:"port"`
	Store  string      `yaml:"store"` // memory, redis, postgres
	Taken  []string    `yaml:"taken"`
	Faults FaultConfig `yaml:"faults"`
}

// FaultConfig makes the server fail its first lookups.
type FaultConfig struct {
	ServerErrors int    `yaml:"server_errors"` // 0 = disabled
	Status       int    `yaml:"status"`
	RetryAfter   string `yaml:"retry_after"`
	Reason       string `yaml:"reason"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)
