// Package sim provides a synthetic QuoteSource so the bot can run and be
// demonstrated without a live broker session.
package sim

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"tradebot/market"
)

var anchors = map[string]float64{
	"EURUSD": 1.0850,
	"GBPUSD": 1.2700,
	"USDJPY": 150.00,
	"USDCHF": 0.8800,
	"AUDUSD": 0.6600,
	"USDCAD": 1.3600,
	"NZDUSD": 0.6100,
	"EURJPY": 162.50,
	"GBPJPY": 190.00,
	"XAUUSD": 2400.0,
	"XAGUSD": 28.50,
	"BTCUSD": 65000.0,
	"ETHUSD": 3400.0,
}

// Source generates deterministic random-walk candles. The same seed always
// produces the same series for a given (symbol, timeframe, count) request,
// which keeps demos and tests reproducible.
type Source struct {
	seed    int64
	specs   market.SpecTable
	account market.Account
	now     func() time.Time
}

// NewSource creates a synthetic quote source.
func NewSource(seed int64) *Source {
	return &Source{
		seed:  seed,
		specs: market.DefaultSpecs(),
		account: market.Account{
			Balance:    10_000,
			Equity:     10_000,
			FreeMargin: 10_000,
			Currency:   "USD",
			Login:      620_001,
			Server:     "SimServer-Demo",
		},
		now: time.Now,
	}
}

// SetAccount overrides the account snapshot returned by GetAccountInfo.
func (s *Source) SetAccount(a market.Account) {
	s.account = a
}

// SetClock overrides the time source. Tests use this to pin candle
// timestamps.
func (s *Source) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Source) rng(symbol string, tf market.Timeframe) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	h.Write([]byte(tf))
	return rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
}

func anchor(symbol string) float64 {
	if p, ok := anchors[symbol]; ok {
		return p
	}
	return 1.0
}

// GetRates returns count synthetic candles, oldest first, with the last bar
// aligned to the current time truncated to the timeframe.
func (s *Source) GetRates(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count <= 0 || !tf.Valid() {
		return nil, market.ErrDataUnavailable
	}

	rng := s.rng(symbol, tf)
	base := anchor(symbol)
	step := base * 0.0004 * math.Sqrt(float64(tf.Seconds())/60)

	end := s.now().UTC().Truncate(tf.Duration())
	candles := make([]market.Candle, count)
	price := base
	for i := 0; i < count; i++ {
		open := price
		drift := (rng.Float64() - 0.5) * 2 * step
		closeP := open + drift
		high := math.Max(open, closeP) + rng.Float64()*step/2
		low := math.Min(open, closeP) - rng.Float64()*step/2
		candles[i] = market.Candle{
			Time:   end.Add(-time.Duration(count-1-i) * tf.Duration()),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeP,
			Volume: float64(100 + rng.Intn(900)),
		}
		price = closeP
	}
	return candles, nil
}

// GetCurrentPrice derives a live quote from the tail of the M1 walk plus a
// two-pip spread.
func (s *Source) GetCurrentPrice(ctx context.Context, symbol string) (market.Quote, error) {
	candles, err := s.GetRates(ctx, symbol, market.M1, 50)
	if err != nil {
		return market.Quote{}, err
	}
	spec, _ := s.specs.Lookup(symbol)
	mid := candles[len(candles)-1].Close
	half := spec.PipSize
	return market.Quote{Bid: mid - half, Ask: mid + half}, nil
}

func (s *Source) GetSymbolInfo(ctx context.Context, symbol string) (market.SymbolInfo, error) {
	if err := ctx.Err(); err != nil {
		return market.SymbolInfo{}, err
	}
	digits := 5
	if strings.HasSuffix(symbol, "JPY") {
		digits = 3
	}
	return market.SymbolInfo{
		Name:       symbol,
		Digits:     digits,
		MarginRate: 0.01,
	}, nil
}

func (s *Source) GetAccountInfo(ctx context.Context) (market.Account, error) {
	if err := ctx.Err(); err != nil {
		return market.Account{}, err
	}
	return s.account, nil
}

// IsMarketOpen reports true around the clock for crypto and outside the
// weekend gap for everything else.
func (s *Source) IsMarketOpen(ctx context.Context, symbol string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if strings.Contains(symbol, "BTC") || strings.Contains(symbol, "ETH") {
		return true, nil
	}
	wd := s.now().UTC().Weekday()
	return wd != time.Saturday && wd != time.Sunday, nil
}

func (s *Source) GetSpread(ctx context.Context, symbol string) (float64, error) {
	q, err := s.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}
	return q.Spread(), nil
}
