package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel audit entries are published on.
const DefaultChannel = "kyt:audit"

// historyLimit caps the audit history list kept next to the channel.
const historyLimit = 500

// Client wraps Redis operations for the audit feed.
type Client struct {
	rdb *redis.Client
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
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
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Key helpers
func historyKey(channel string) string {
	return fmt.Sprintf("%s:history", channel)
}

// PublishAndRecord publishes payload on channel and pushes it onto the
// channel's capped history list in one round trip.
func (c *Client) PublishAndRecord(ctx context.Context, channel string, payload []byte) error {
	key := historyKey(channel)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Publish(ctx, channel, payload)
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, historyLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish to %s failed: %w", channel, err)
	}
	return nil
}

// History returns up to n of the most recent payloads recorded on channel.
func (c *Client) History(ctx context.Context, channel string, n int64) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	res, err := c.rdb.LRange(ctx, historyKey(channel), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange failed: %w", err)
	}
	return res, nil
}
