package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON values under a key prefix
// ⭐ SSOT: 캐시 헬퍼는 여기서만
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(key string) string {
	return fmt.Sprintf("%s:cache:%s", c.prefix, key)
}

// Get reads key into dest. A miss is (false, nil).
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	data, err := c.client.Redis().Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return true, nil
}

// Set stores a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return c.client.Redis().Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}
	return c.client.Redis().Del(ctx, c.key(key)).Err()
}

// GetOrSet reads key into dest, or calls fn and caches its result.
// The second result reports a cache hit. A failing cache never fails the call.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func() (T, error)) (T, bool, error) {
	var cached T
	if found, err := c.Get(ctx, key, &cached); err == nil && found {
		return cached, true, nil
	}

	value, err := fn()
	if err != nil {
		return value, false, err
	}
	_ = c.Set(ctx, key, value, ttl)
	return value, false, nil
}

// Predefined TTLs
const (
	TTLNow    = 30 * time.Second // 현재 시각 리포트
	TTLReport = 24 * time.Hour   // 지정 시각 리포트 (불변)
)

// ReportKey identifies the report of one instant at one site
func ReportKey(reportID string) string {
	return fmt.Sprintf("report:%s", reportID)
}

// GuaQiKey identifies a Gua-Qi lookup by accumulated fen
func GuaQiKey(fen int64) string {
	return fmt.Sprintf("guaqi:%d", fen)
}

// MansionKey identifies a mansion lookup, rounded to 1e-4 degree
func MansionKey(longitude float64) string {
	return fmt.Sprintf("mansion:%d", int64(math.Round(longitude*1e4)))
}
