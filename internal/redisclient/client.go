package redisclient

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:embed scripts/reserve_size.lua
var reserveSizeScript string

//go:embed scripts/release_size.lua
var releaseSizeScript string

type Client struct {
	rdb           *redis.Client
	reserveScript *redis.Script
	releaseScript *redis.Script
}

// NewClient creates a new Redis client with Lua scripts loaded
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		rdb:           rdb,
		reserveScript: redis.NewScript(reserveSizeScript),
		releaseScript: redis.NewScript(releaseSizeScript),
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func stockKey(productID int64, size string) string {
	return fmt.Sprintf("stock:%d:%s", productID, size)
}

// stockCacheTTL bounds how long a stock entry can serve the fast path before
// it must be re-seeded from the database. The cache can lag behind
// cancellations and expiries when redis is briefly unreachable; the TTL keeps
// any such drift from persisting.
const stockCacheTTL = 24 * time.Hour

// Stock reservation results from the Lua fast path
const (
	ReserveUnknown = -1
	ReserveEmpty   = 0
	ReserveOK      = 1
)

// ReserveSize atomically decrements per-size stock via Lua script. The
// result is advisory: ReserveUnknown means the key is not cached, and
// ReserveEmpty means the cached count is exhausted; in both cases the caller
// falls back to the database, which stays authoritative.
func (c *Client) ReserveSize(ctx context.Context, productID int64, size string) (int, error) {
	result, err := c.reserveScript.Run(ctx, c.rdb, []string{stockKey(productID, size)}).Result()
	if err != nil {
		return ReserveUnknown, fmt.Errorf("reserve size script failed: %w", err)
	}

	code, ok := result.(int64)
	if !ok {
		return ReserveUnknown, fmt.Errorf("unexpected script result type")
	}

	return int(code), nil
}

// ReleaseSize atomically returns one unit of per-size stock
func (c *Client) ReleaseSize(ctx context.Context, productID int64, size string) error {
	_, err := c.releaseScript.Run(ctx, c.rdb, []string{stockKey(productID, size)}).Result()
	if err != nil {
		return fmt.Errorf("release size script failed: %w", err)
	}
	return nil
}

// InitSizeStock seeds the per-size stock cache
func (c *Client) InitSizeStock(ctx context.Context, productID int64, size string, quantity int) error {
	return c.rdb.Set(ctx, stockKey(productID, size), quantity, stockCacheTTL).Err()
}

// DropSizeStock evicts the cache entry so the next reservation falls back
// to the database (used after admin stock edits).
func (c *Client) DropSizeStock(ctx context.Context, productID int64, size string) error {
	return c.rdb.Del(ctx, stockKey(productID, size)).Err()
}

// CreateSession stores an admin session token with TTL
func (c *Client) CreateSession(ctx context.Context, token string, adminUserID int64, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("session:%s", token), adminUserID, ttl).Err()
}

// GetSession resolves a session token to an admin user ID. Returns
// (0, false, nil) when the session does not exist or has expired.
func (c *Client) GetSession(ctx context.Context, token string) (int64, bool, error) {
	id, err := c.rdb.Get(ctx, fmt.Sprintf("session:%s", token)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// DeleteSession removes a session token
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("session:%s", token)).Err()
}

// IncrementViewCount bumps the hot view counter for a product
func (c *Client) IncrementViewCount(ctx context.Context, productID int64) (int64, error) {
	return c.rdb.Incr(ctx, fmt.Sprintf("views:%d", productID)).Result()
}
