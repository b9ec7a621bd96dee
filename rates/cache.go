// Package rates maintains the latest candle series per (symbol, timeframe)
// and keeps them fresh with a background polling loop.
package rates

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tradebot/broker"
	"tradebot/market"
	"tradebot/metrics"
)

// DefaultRetention is the number of candles kept per cached series.
const DefaultRetention = 1000

type key struct {
	symbol string
	tf     market.Timeframe
}

// Cache is a thread-safe store of the most recent candle series per
// (symbol, timeframe). Only the Refresher writes to it; a write replaces the
// whole series for a key, so readers always observe a fully-previous or
// fully-current series.
type Cache struct {
	source    broker.QuoteSource
	log       *zap.Logger
	retention int

	mu     sync.RWMutex
	series map[key][]market.Candle
}

// NewCache creates an empty cache backed by source for cache-miss reads.
// A retention of zero or less uses DefaultRetention.
func NewCache(source broker.QuoteSource, retention int, log *zap.Logger) *Cache {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		source:    source,
		log:       log,
		retention: retention,
		series:    make(map[key][]market.Candle),
	}
}

// Get returns the most recent count candles for (symbol, tf), oldest first.
// If the cache holds at least count candles the result is a copy of the
// cached tail; otherwise it falls through to a direct source fetch. The
// fallback does not populate the cache — only the Refresher writes.
func (c *Cache) Get(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	if count <= 0 {
		return nil, fmt.Errorf("rates: count must be positive, got %d: %w", count, market.ErrComputation)
	}

	c.mu.RLock()
	cached := c.series[key{symbol, tf}]
	c.mu.RUnlock()

	if len(cached) >= count {
		metrics.CacheHits.WithLabelValues(string(tf)).Inc()
		return market.LastN(cached, count), nil
	}

	metrics.CacheFallbacks.WithLabelValues(string(tf)).Inc()
	candles, err := c.source.GetRates(ctx, symbol, tf, count)
	if err != nil {
		return nil, fmt.Errorf("rates: fallback fetch %s %s: %w", symbol, tf, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("rates: fallback fetch %s %s: %w", symbol, tf, market.ErrDataUnavailable)
	}
	return candles, nil
}

// put replaces the cached series for (symbol, tf) with the tail of candles,
// trimmed to the retention count. The stored slice is a private copy.
func (c *Cache) put(symbol string, tf market.Timeframe, candles []market.Candle) {
	trimmed := market.LastN(candles, c.retention)

	c.mu.Lock()
	c.series[key{symbol, tf}] = trimmed
	n := len(c.series)
	c.mu.Unlock()

	metrics.CachedSeries.Set(float64(n))
}

// Len returns the number of cached (symbol, timeframe) entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.series)
}
