package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c := NewRedisCacheFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Fatalf("Get on empty = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists("crimereport:k") {
		t.Error("key should be stored with default prefix")
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v; want \"v\", true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should expire after its TTL")
	}
}

func TestRedisCachePrefix(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	c := NewRedisCacheFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}), WithRedisPrefix("test:"))
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !mr.Exists("test:k") {
		t.Error("key should be stored under custom prefix")
	}
}
