package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every lookup misses and writes are dropped.
// It backs --no-cache and is the fallback when no cache directory exists.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

// Get reports a miss unless ctx is already done.
func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
