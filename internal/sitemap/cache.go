// Package sitemap fetches the store sitemap and memoizes its URL list for a
// fixed time window.
package sitemap

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/idnt/idntbot/internal/logger"
	"github.com/idnt/idntbot/internal/metrics"
)

// DefaultTTL is the freshness threshold of a cached URL list.
const DefaultTTL = 600 * time.Second

// ErrUnexpectedStatus is returned by HTTPFetcher for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected sitemap response status")

var locPattern = regexp.MustCompile(`<loc>(.*?)</loc>`)

// Entry is one snapshot of the sitemap. It is never mutated after creation.
type Entry struct {
	FetchedAt time.Time
	URLs      []string
}

// Cache serves the sitemap URL list, refetching it once the cached entry is
// older than the TTL. Concurrent refreshes are allowed: each one replaces the
// whole entry and the last write wins.
type Cache struct {
	fetcher  Fetcher
	fallback string
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	metrics  *metrics.Metrics

	entry atomic.Pointer[Entry]
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l.With("component", "sitemap_cache")
		}
	}
}

// WithMetrics records fetch results.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache creates an empty cache. fallbackURL is returned as a one-element
// list whenever a fetch fails.
func NewCache(fetcher Fetcher, fallbackURL string, opts ...Option) *Cache {
	c := &Cache{
		fetcher:  fetcher,
		fallback: fallbackURL,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URLs returns the cached URL list while it is non-empty and fresh, otherwise
// refreshes it. On refresh failure it returns the fallback URL alone and keeps
// the previous entry, so the next call retries. The returned slice is shared
// and must not be modified.
func (c *Cache) URLs(ctx context.Context) []string {
	if e := c.entry.Load(); e != nil && len(e.URLs) > 0 && c.now().Sub(e.FetchedAt) < c.ttl {
		return e.URLs
	}

	urls, err := c.Refresh(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "Sitemap refresh failed, serving fallback", "error", err, "fallback", c.fallback)
		return []string{c.fallback}
	}
	return urls
}

// Refresh fetches the sitemap and replaces the cached entry. An empty
// document yields an empty list, which URLs treats as absent.
func (c *Cache) Refresh(ctx context.Context) ([]string, error) {
	startTime := c.now()

	body, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.metrics.SitemapFetch(metrics.FetchError, 0)
		return nil, err
	}

	urls := ExtractURLs(body)
	c.entry.Store(&Entry{FetchedAt: startTime, URLs: urls})
	c.metrics.SitemapFetch(metrics.FetchOK, len(urls))

	c.logger.DebugContext(ctx, "Sitemap refreshed", "url_count", len(urls))
	return urls, nil
}

// Snapshot returns the current entry, or nil before the first successful fetch.
func (c *Cache) Snapshot() *Entry {
	return c.entry.Load()
}

// ExtractURLs returns every value enclosed in <loc>…</loc>, in document order.
func ExtractURLs(doc []byte) []string {
	matches := locPattern.FindAllSubmatch(doc, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, string(m[1]))
	}
	return urls
}
