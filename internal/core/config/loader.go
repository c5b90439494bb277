package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${ENV} references first.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Client.Name == "" {
		cfg.Client.Name = "default"
	}
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "http://127.0.0.1:8080"
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 10 * time.Second
	}
	if cfg.Client.Retry.MaxAttempts == 0 {
		cfg.Client.Retry.MaxAttempts = 10
	}
	if cfg.Client.Retry.Delay == 0 {
		cfg.Client.Retry.Delay = 3 * time.Second
	}
	if cfg.Client.Retry.MaxDelay == 0 {
		cfg.Client.Retry.MaxDelay = 60 * time.Second
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Store == "" {
		cfg.Server.Store = StoreMemory
	}
	if cfg.Server.Faults.Status == 0 {
		cfg.Server.Faults.Status = 503
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate rejects settings the client or server cannot run with.
func (c *AppConfig) Validate() error {
	if c.Client.Retry.MaxAttempts < 1 {
		return fmt.Errorf("client.retry.max_attempts must be at least 1, got %d", c.Client.Retry.MaxAttempts)
	}
	if c.Client.Retry.Delay < 0 {
		return fmt.Errorf("client.retry.delay must not be negative")
	}
	if s := c.Server.Faults.Status; s < 500 || s > 599 {
		return fmt.Errorf("server.faults.status must be a 5xx code, got %d", s)
	}
	switch c.Server.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("redis.url is required for the redis store")
		}
	case StorePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown server.store %q", c.Server.Store)
	}
	return nil
}
