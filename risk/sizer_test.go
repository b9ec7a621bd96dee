package risk

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebot/market"
)

// stubSource returns scripted account, quote, and symbol info values.
type stubSource struct {
	account    market.Account
	accountErr error
	quote      market.Quote
	quoteErr   error
	info       market.SymbolInfo
	infoErr    error
}

func (s *stubSource) GetRates(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	return nil, market.ErrDataUnavailable
}

func (s *stubSource) GetCurrentPrice(ctx context.Context, symbol string) (market.Quote, error) {
	return s.quote, s.quoteErr
}

func (s *stubSource) GetSymbolInfo(ctx context.Context, symbol string) (market.SymbolInfo, error) {
	return s.info, s.infoErr
}

func (s *stubSource) GetAccountInfo(ctx context.Context) (market.Account, error) {
	return s.account, s.accountErr
}

func (s *stubSource) IsMarketOpen(ctx context.Context, symbol string) (bool, error) {
	return true, nil
}

func (s *stubSource) GetSpread(ctx context.Context, symbol string) (float64, error) {
	return s.quote.Spread(), s.quoteErr
}

func newTestSizer(src *stubSource) *Sizer {
	return NewSizer(src, nil, DefaultLimits(), nil)
}

func TestLotSizeReferenceScenario(t *testing.T) {
	t.Parallel()

	// 10000 balance, 1% risk, 50 pip stop on EURUSD at pip value 10:
	// risk 100 / (50 * 10) = 0.20 lots.
	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:      "EURUSD",
		EntryPrice:  1.1050,
		StopLoss:    1.1000,
		RiskPercent: 1.0,
	})

	assert.InDelta(t, 0.20, got.Lots, 1e-9)
	assert.Equal(t, PolicyRisk, got.Policy)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 50.0, got.RiskPips, 1e-6)
}

func TestLotSizeZeroStopDistance(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:     "EURUSD",
		EntryPrice: 1.1050,
		StopLoss:   1.1050,
	})

	assert.InDelta(t, 0.01, got.Lots, 1e-9)
	assert.Equal(t, PolicyFallbackMin, got.Policy)
}

func TestLotSizeAccountUnavailable(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{accountErr: market.ErrDataUnavailable})

	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:     "EURUSD",
		EntryPrice: 1.1050,
		StopLoss:   1.1000,
	})

	assert.InDelta(t, 0.01, got.Lots, 1e-9)
	assert.Equal(t, PolicyFallbackMin, got.Policy)
}

func TestLotSizeNonPositiveBalance(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: -50}})

	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:     "EURUSD",
		EntryPrice: 1.1050,
		StopLoss:   1.1000,
	})

	assert.Equal(t, PolicyFallbackMin, got.Policy)
}

func TestLotSizeClamps(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	// 50% risk on a 5 pip stop: 5000/(5*10) = 100 lots, capped at 10.
	big := s.LotSize(context.Background(), SizingRequest{
		Symbol:      "EURUSD",
		EntryPrice:  1.1005,
		StopLoss:    1.1000,
		RiskPercent: 50,
	})
	assert.InDelta(t, 10.0, big.Lots, 1e-9)
	assert.Equal(t, PolicyMaxClamp, big.Policy)

	// 0.001% risk on a 50 pip stop: 0.1/(50*10) = 0.0002 lots, raised to
	// the minimum.
	small := s.LotSize(context.Background(), SizingRequest{
		Symbol:      "EURUSD",
		EntryPrice:  1.1050,
		StopLoss:    1.1000,
		RiskPercent: 0.001,
	})
	assert.InDelta(t, 0.01, small.Lots, 1e-9)
	assert.Equal(t, PolicyMinClamp, small.Policy)
}

func TestLotSizeBoundsAndStep(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 25_000}})

	stops := []float64{1.1049, 1.1040, 1.1000, 1.0950, 1.0500}
	risks := []float64{0.1, 0.5, 1, 2, 5, 25}

	for _, stop := range stops {
		for _, risk := range risks {
			got := s.LotSize(context.Background(), SizingRequest{
				Symbol:      "EURUSD",
				EntryPrice:  1.1050,
				StopLoss:    stop,
				RiskPercent: risk,
			})
			assert.GreaterOrEqual(t, got.Lots, 0.01)
			assert.LessOrEqual(t, got.Lots, 10.0)
			// Always a whole number of 0.01 lot steps.
			steps := got.Lots * 100
			assert.InDelta(t, math.Round(steps), steps, 1e-6)
		}
	}
}

func TestLotSizeMonotonicInRisk(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	prev := 0.0
	for _, risk := range []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 75} {
		got := s.LotSize(context.Background(), SizingRequest{
			Symbol:      "EURUSD",
			EntryPrice:  1.1050,
			StopLoss:    1.1000,
			RiskPercent: risk,
		})
		assert.GreaterOrEqual(t, got.Lots, prev, "risk %.2f%%", risk)
		prev = got.Lots
	}
	assert.InDelta(t, 10.0, prev, 1e-9, "clamped at max by the end of the ramp")
}

func TestLotSizeDefaultRiskPercent(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:     "EURUSD",
		EntryPrice: 1.1050,
		StopLoss:   1.1000,
		// RiskPercent omitted: defaults to 1%.
	})
	assert.InDelta(t, 0.20, got.Lots, 1e-9)
}

func TestLotSizeJPYPair(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{account: market.Account{Balance: 10_000}})

	// 50 pip stop on USDJPY (pip size 0.01).
	got := s.LotSize(context.Background(), SizingRequest{
		Symbol:      "USDJPY",
		EntryPrice:  150.50,
		StopLoss:    150.00,
		RiskPercent: 1.0,
	})
	assert.InDelta(t, 50.0, got.RiskPips, 1e-6)
	assert.InDelta(t, 0.20, got.Lots, 1e-9)
}

func TestPositionValue(t *testing.T) {
	t.Parallel()

	src := &stubSource{quote: market.Quote{Bid: 1.1000, Ask: 1.1002}}
	s := newTestSizer(src)

	// 0.2 lots * 100000 * 1.1001 mid.
	assert.InDelta(t, 22_002.0, s.PositionValue(context.Background(), "EURUSD", 0.2), 1e-6)

	// Gold trades a 100 contract.
	src.quote = market.Quote{Bid: 2399.9, Ask: 2400.1}
	assert.InDelta(t, 0.5*100*2400.0, s.PositionValue(context.Background(), "XAUUSD", 0.5), 1e-6)
}

func TestPositionValueNoQuote(t *testing.T) {
	t.Parallel()

	s := newTestSizer(&stubSource{quoteErr: market.ErrDataUnavailable})
	assert.Zero(t, s.PositionValue(context.Background(), "EURUSD", 1.0))
}

func TestMarginRequired(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		quote: market.Quote{Bid: 1.0, Ask: 1.0},
		info:  market.SymbolInfo{Name: "EURUSD", MarginRate: 0.02},
	}
	s := newTestSizer(src)

	// 1 lot * 100000 * 1.0 * 0.02.
	assert.InDelta(t, 2000.0, s.MarginRequired(context.Background(), "EURUSD", 1.0), 1e-6)
}

func TestMarginRequiredDefaultsRate(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		quote: market.Quote{Bid: 1.0, Ask: 1.0},
		info:  market.SymbolInfo{Name: "EURUSD"}, // no margin rate
	}
	s := newTestSizer(src)

	assert.InDelta(t, 1000.0, s.MarginRequired(context.Background(), "EURUSD", 1.0), 1e-6)
}

func TestMarginRequiredNoMetadata(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		quote:   market.Quote{Bid: 1.0, Ask: 1.0},
		infoErr: market.ErrDataUnavailable,
	}
	s := newTestSizer(src)

	assert.Zero(t, s.MarginRequired(context.Background(), "EURUSD", 1.0))
}
