package rates

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/errs"
)

// Source produces a fresh rate table. Feed implements Source.
type Source interface {
	Fetch(ctx context.Context) (Table, error)
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger used by Run.
func WithLogger(l *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l
	}
}

// WithFallback sets a table served until the first successful refresh.
func WithFallback(t Table) CacheOption {
	return func(c *Cache) {
		c.fallback = t.Clone()
	}
}

// Cache holds the most recently fetched rate table. It is safe for
// concurrent use and implements units.RateProvider.
type Cache struct {
	src      Source
	logger   *zap.Logger
	fallback Table

	mu      sync.RWMutex
	table   Table
	updated time.Time
}

// NewCache creates an empty cache backed by src.
func NewCache(src Source, opts ...CacheOption) *Cache {
	c := &Cache{src: src, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rates returns a copy of the current table. Before the first successful
// refresh it returns the fallback table if one is set, and an
// errs.ErrRatesUnavailable error otherwise.
func (c *Cache) Rates() (map[string]float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.table != nil:
		return c.table.Clone(), nil
	case c.fallback != nil:
		return c.fallback.Clone(), nil
	}
	return nil, errs.RatesUnavailable("rates.Cache", "exchange rates have not been loaded")
}

// UpdatedAt returns when the table was last refreshed, or the zero time.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updated
}

// Refresh fetches a new table. On failure the previous table is kept.
func (c *Cache) Refresh(ctx context.Context) error {
	table, err := c.src.Fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.table = table.Clone()
	c.updated = time.Now()
	c.mu.Unlock()
	return nil
}

// Run refreshes immediately and then every interval until ctx is done.
// Failures are logged and do not stop the loop.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	c.refreshAndLog(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshAndLog(ctx)
		}
	}
}

func (c *Cache) refreshAndLog(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("exchange rate refresh failed", zap.Error(err))
		return
	}
	c.logger.Debug("exchange rates refreshed", zap.Time("updated", c.UpdatedAt()))
}

// Static serves a fixed table.
type Static Table

// Rates returns a copy of the table.
func (s Static) Rates() (map[string]float64, error) {
	if len(s) == 0 {
		return nil, errs.RatesUnavailable("rates.Static", "empty rate table")
	}
	return Table(s).Clone(), nil
}

// DefaultStatic returns the built-in approximate table.
func DefaultStatic() Static {
	return Static{
		"USD": 1,
		"EUR": 0.85,
		"GBP": 0.73,
		"JPY": 110.0,
		"CAD": 1.25,
		"AUD": 1.35,
		"INR": 74.0,
	}
}
