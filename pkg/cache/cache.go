// Package cache provides byte-oriented caching for statistics responses.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under ~/.cache/crimereport (CLI default)
//   - [RedisCache]: shared cache for `crimereport serve` deployments
//   - [NullCache]: disables caching (--no-cache, tests)
//
// Keys are produced by a [Keyer] so that every backend sees the same layout
// and scoped deployments can isolate their namespaces with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long fetched yearly statistics stay fresh. Published
// yearly figures change rarely, so a day keeps the backend quiet without
// hiding corrections for long.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte payloads with an optional time-to-live.
type Cache interface {
	// Get returns (data, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// StatsKey generates a key for a decoded yearly statistics query.
	StatsKey(region string, opts StatsKeyOpts) string
}

// StatsKeyOpts carries the query parameters that change a statistics result.
type StatsKeyOpts struct {
	From    int    `json:"from"`
	To      int    `json:"to"`
	Backend string `json:"backend,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// StatsKey returns "stats:<region>:<hash(opts)>".
func (DefaultKeyer) StatsKey(region string, opts StatsKeyOpts) string {
	return hashKey("stats:"+region, opts)
}
