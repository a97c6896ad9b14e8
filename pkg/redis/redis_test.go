package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dayan/pkg/config"
)

func TestNew_Disabled(t *testing.T) {
	client, err := New(context.Background(), &config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)

	assert.False(t, client.Enabled())
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(Disabled(), "test")
	cfg := ReportRateLimit("203.0.113.7")

	allowed, remaining, err := limiter.Allow(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, cfg.Limit, remaining)
	assert.Equal(t, "report:203.0.113.7", cfg.Key)
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(Disabled(), "test")
	ctx := context.Background()

	var result string
	found, err := cache.Get(ctx, "key", &result)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, cache.Set(ctx, "key", "value", TTLNow))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestGetOrSet_DisabledAlwaysComputes(t *testing.T) {
	cache := NewCache(Disabled(), "test")
	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 2; i++ {
		v, hit, err := GetOrSet(context.Background(), cache, "k", TTLNow, fn)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.False(t, hit)
	}
	assert.Equal(t, 2, calls)

	_, _, err := GetOrSet(context.Background(), cache, "k", TTLNow, func() (int, error) {
		return 0, errors.New("boom")
	})
	assert.Error(t, err)
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"ReportKey", ReportKey("5f0c"), "report:5f0c"},
		{"GuaQiKey", GuaQiKey(27460), "guaqi:27460"},
		{"MansionKey", MansionKey(270.1234), "mansion:2701234"},
		{"MansionKeyNegative", MansionKey(-0.5), "mansion:-5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
