package rates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tradebot/market"
	"tradebot/metrics"
)

// SweepTimeframes are the granularities the refresher keeps hot. D1 and M30
// are served by the cache-miss fallback instead of the sweep.
var SweepTimeframes = []market.Timeframe{market.M1, market.M5, market.M15, market.H1, market.H4}

// RefresherOptions tune the polling loop. Zero values select the defaults.
type RefresherOptions struct {
	Interval    time.Duration // sweep cadence, default 1s
	Backoff     time.Duration // pause after a sweep-level failure, default 5s
	StopTimeout time.Duration // bound on the Stop join, default 5s
	Count       int           // candles fetched per pair, default DefaultRetention
}

func (o RefresherOptions) withDefaults() RefresherOptions {
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Backoff <= 0 {
		o.Backoff = 5 * time.Second
	}
	if o.StopTimeout <= 0 {
		o.StopTimeout = 5 * time.Second
	}
	if o.Count <= 0 {
		o.Count = DefaultRetention
	}
	return o
}

// Refresher repopulates the cache from the quote source at a fixed cadence.
// It polls every symbol × SweepTimeframes pair once per interval; a slow
// source simply delays the next sweep, missed sweeps are not queued.
type Refresher struct {
	cache *Cache
	log   *zap.Logger
	opts  RefresherOptions

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewRefresher creates a refresher writing into cache.
func NewRefresher(cache *Cache, opts RefresherOptions, log *zap.Logger) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Refresher{
		cache: cache,
		log:   log,
		opts:  opts.withDefaults(),
		done:  make(chan struct{}),
	}
}

// Start launches the background sweep loop for symbols. Subsequent calls are
// no-ops.
func (r *Refresher) Start(symbols []string) {
	r.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		r.cancel = cancel
		r.log.Info("refresher started",
			zap.Strings("symbols", symbols),
			zap.Duration("interval", r.opts.Interval))
		go r.loop(ctx, symbols)
	})
}

// Stop signals the loop to exit and waits up to StopTimeout for it. The join
// is best-effort: on timeout Stop returns anyway and the goroutine winds
// down on its own. Stop is idempotent and safe before Start.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel == nil {
			return
		}
		r.cancel()
		select {
		case <-r.done:
			r.log.Info("refresher stopped")
		case <-time.After(r.opts.StopTimeout):
			r.log.Warn("refresher did not stop within timeout",
				zap.Duration("timeout", r.opts.StopTimeout))
		}
	})
}

func (r *Refresher) loop(ctx context.Context, symbols []string) {
	defer close(r.done)

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		if err := r.sweep(ctx, symbols); err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Error("sweep failed, backing off",
				zap.Error(err),
				zap.Duration("backoff", r.opts.Backoff))
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.opts.Backoff):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sweep fetches the latest candles for every symbol × timeframe pair in a
// fixed enumeration order. Per-pair failures are logged and skipped; only a
// panic or cancellation aborts the sweep.
func (r *Refresher) sweep(ctx context.Context, symbols []string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("rates: sweep panic: %v", p)
		}
	}()

	start := time.Now()
	for _, symbol := range symbols {
		for _, tf := range SweepTimeframes {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			candles, ferr := r.cache.source.GetRates(ctx, symbol, tf, r.opts.Count)
			if ferr != nil {
				metrics.FetchErrors.WithLabelValues(symbol, string(tf)).Inc()
				r.log.Error("candle fetch failed",
					zap.String("symbol", symbol),
					zap.String("timeframe", string(tf)),
					zap.Error(ferr))
				continue
			}
			if len(candles) == 0 {
				metrics.FetchErrors.WithLabelValues(symbol, string(tf)).Inc()
				r.log.Error("candle fetch returned no data",
					zap.String("symbol", symbol),
					zap.String("timeframe", string(tf)))
				continue
			}
			r.cache.put(symbol, tf, candles)
		}
	}

	metrics.SweepsTotal.Inc()
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	return nil
}
