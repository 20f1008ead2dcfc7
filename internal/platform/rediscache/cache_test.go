package rediscache

import (
	"context"
	"testing"
	"time"
)

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dst []string
	hit, err := c.GetJSON(ctx, "k", &dst)
	if hit || err != nil {
		t.Fatalf("nil cache must miss silently, got hit=%v err=%v", hit, err)
	}
	if err := c.SetJSON(ctx, "k", []string{"v"}, time.Minute); err != nil {
		t.Fatalf("SetJSON on nil cache: %v", err)
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("Ping on nil cache must report not initialized")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil cache: %v", err)
	}
}

func TestNewFromEnvDisabledWithoutAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	c, err := NewFromEnv(nil)
	if c != nil || err != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", c, err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_KEY_PREFIX", "")

	cfg := ConfigFromEnv()
	if cfg.Addr != "cache:6379" || cfg.DB != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.KeyPrefix != "navgraph:" {
		t.Fatalf("empty prefix must fall back to the default, got %q", cfg.KeyPrefix)
	}
}
