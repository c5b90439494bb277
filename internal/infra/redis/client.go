package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/namecheck/internal/infra/storage"
)

// defaultKey is the set holding taken names.
const defaultKey = "namecheck:taken"

// Client is a Redis-backed storage.NameRegistry.
type Client struct {
	rdb *redis.Client
	key string
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Key      string `yaml:"key"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = defaultKey
	}

	return &Client{rdb: rdb, key: key}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsTaken checks set membership for name.
func (c *Client) IsTaken(ctx context.Context, name string) (bool, error) {
	ok, err := c.rdb.SIsMember(ctx, c.key, storage.NormalizeName(name)).Result()
	if err != nil {
		return false, fmt.Errorf("sismember failed: %w", err)
	}
	return ok, nil
}

// Reserve adds name to the set. SADD reports zero added members when the
// name was already present, which makes the check-and-set atomic.
func (c *Client) Reserve(ctx context.Context, name string) error {
	added, err := c.rdb.SAdd(ctx, c.key, storage.NormalizeName(name)).Result()
	if err != nil {
		return fmt.Errorf("sadd failed: %w", err)
	}
	if added == 0 {
		return storage.ErrNameTaken
	}
	return nil
}

// Seed marks names as taken, ignoring ones already present.
func (c *Client) Seed(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	members := make([]any, len(names))
	for i, name := range names {
		members[i] = storage.NormalizeName(name)
	}
	if err := c.rdb.SAdd(ctx, c.key, members...).Err(); err != nil {
		return fmt.Errorf("sadd failed: %w", err)
	}
	return nil
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
