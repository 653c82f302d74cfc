// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const keyPrefix = "storefront:session:"

// cmdable is the slice of the redis client the session store uses
type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Client wraps the Redis client and persists the session under a namespace
type Client struct {
	store     cmdable
	raw       *redis.Client
	namespace string
	ttl       time.Duration
}

// NewConnection creates a new Redis connection
func NewConnection(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		// Connection timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		// Pool timeouts
		PoolTimeout: 4 * time.Second,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger != nil {
		logger.WithField("addr", cfg.GetRedisAddr()).Info("redis session store connected")
	}

	return &Client{
		store:     rdb,
		raw:       rdb,
		namespace: keyPrefix + cfg.App.Environment + ":",
		ttl:       cfg.Session.TTL,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// Health checks the Redis connection health
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.store.Ping(ctx).Err()
}

// Key returns the namespaced redis key for a session key
func (c *Client) Key(key string) string {
	return c.namespace + key
}

// Set stores a session value, expiring after the configured TTL (0 keeps it)
func (c *Client) Set(ctx context.Context, key, value string) error {
	return c.store.Set(ctx, c.Key(key), value, c.ttl).Err()
}

// Get retrieves a session value
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.store.Get(ctx, c.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", auth.ErrKeyNotFound
	}
	return value, err
}

// Del deletes one or more session values
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = c.Key(key)
	}
	return c.store.Del(ctx, namespaced...).Err()
}
