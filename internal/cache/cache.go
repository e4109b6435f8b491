package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis for the session read-through cache. Redis is an
// optimization here, never the source of truth: any failure degrades
// to a cache miss and the storefront keeps serving from MySQL.
type Client struct {
	client *redis.Client
}

// New connects to redis at addr.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the value for key, or nil when the key is absent or
// redis is unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors alike read as a miss
		return nil, nil
	}
	return res, nil
}

// Set stores value under key for ttl. Write failures are dropped.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	c.client.Set(ctx, key, value, ttl)
	return nil
}

// Delete evicts key. Failures are dropped; the entry's TTL still
// bounds how long a stale mapping can live.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	c.client.Del(ctx, key)
	return nil
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
