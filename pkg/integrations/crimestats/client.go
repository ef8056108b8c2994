package crimestats

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/realassist/crimereport/pkg/cache"
	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/integrations"
)

// Defaults matching the deployed backend and the report's fixed query.
const (
	DefaultBaseURL = "http://localhost:9000/burglary/data"
	DefaultRegion  = "AK"
	DefaultFrom    = 2012
	DefaultTo      = 2022
)

// StatusFetchFailed is the user-visible status when the backend cannot be read.
const StatusFetchFailed = "An error occurred while fetching data. Please try again later."

// Query selects a region and an inclusive year range.
type Query struct {
	Region string
	From   int
	To     int
}

// DefaultQuery returns the query the report is generated for when the
// caller does not choose one.
func DefaultQuery() Query {
	return Query{Region: DefaultRegion, From: DefaultFrom, To: DefaultTo}
}

// Normalize upper-cases and trims the region.
func (q Query) Normalize() Query {
	q.Region = strings.ToUpper(strings.TrimSpace(q.Region))
	return q
}

// Validate checks the region and year range.
func (q Query) Validate() error {
	if err := errs.ValidateRegion(q.Region); err != nil {
		return err
	}
	return errs.ValidateYearRange(q.From, q.To)
}

// Values encodes the query the way the backend expects it.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("state", q.Region)
	v.Set("from", strconv.Itoa(q.From))
	v.Set("to", strconv.Itoa(q.To))
	return v
}

// String renders "AK 2012-2022".
func (q Query) String() string {
	return fmt.Sprintf("%s %d-%d", q.Region, q.From, q.To)
}

// Client queries the statistics backend.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
	group   singleflight.Group
}

// NewClient creates a statistics client. An empty baseURL selects
// [DefaultBaseURL]; a nil backend disables caching.
func NewClient(backend cache.Cache, baseURL string, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: strings.TrimRight(baseURL, "?"),
		keyer:   cache.NewDefaultKeyer(),
	}
}

// WithKeyer replaces the cache keyer, e.g. with a scoped keyer for a
// shared Redis deployment.
func (c *Client) WithKeyer(k cache.Keyer) *Client {
	if k != nil {
		c.keyer = k
	}
	return c
}

// BaseURL returns the backend endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Yearly returns the records for q ordered by year.
//
// If refresh is true, the cache is bypassed and the backend is queried.
//
// Returns:
//   - INVALID_REGION / INVALID_RANGE errors for a bad query
//   - [integrations.ErrNotFound] if the backend has no data for the region
//   - [integrations.ErrNetwork] for HTTP failures after retries
//   - [integrations.ErrMalformed] if the body is not a record array
func (c *Client) Yearly(ctx context.Context, q Query, refresh bool) ([]Record, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := c.keyer.StatsKey(q.Region, cache.StatsKeyOpts{From: q.From, To: q.To, Backend: c.baseURL})
	v, err, _ := c.group.Do(fmt.Sprintf("%s|%t", key, refresh), func() (any, error) {
		var records []Record
		err := c.Cached(ctx, "stats", key, refresh, &records, func() error {
			return c.fetch(ctx, q, &records)
		})
		return records, err
	})
	if err != nil {
		return nil, err
	}

	// singleflight shares the slice between waiters
	shared := v.([]Record)
	out := make([]Record, len(shared))
	copy(out, shared)
	return out, nil
}

func (c *Client) fetch(ctx context.Context, q Query, records *[]Record) error {
	var data []Record
	if err := c.Get(ctx, c.baseURL+"?"+q.Values().Encode(), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: statistics for %s", err, q)
		}
		return err
	}
	*records = sortByYear(data)
	return nil
}
