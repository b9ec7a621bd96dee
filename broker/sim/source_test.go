package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebot/market"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 6, 5, 12, 34, 56, 0, time.UTC) // a Wednesday
	return func() time.Time { return at }
}

func TestGetRatesShape(t *testing.T) {
	t.Parallel()

	src := NewSource(42)
	src.SetClock(fixedClock())

	candles, err := src.GetRates(context.Background(), "EURUSD", market.H1, 100)
	require.NoError(t, err)
	require.Len(t, candles, 100)

	assert.True(t, market.Ascending(candles))
	for _, c := range candles {
		assert.GreaterOrEqual(t, c.High, c.Open)
		assert.GreaterOrEqual(t, c.High, c.Close)
		assert.LessOrEqual(t, c.Low, c.Open)
		assert.LessOrEqual(t, c.Low, c.Close)
	}

	// Last bar aligned to the hour.
	last := candles[len(candles)-1].Time
	assert.Equal(t, time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC), last)
}

func TestGetRatesDeterministic(t *testing.T) {
	t.Parallel()

	a := NewSource(7)
	a.SetClock(fixedClock())
	b := NewSource(7)
	b.SetClock(fixedClock())

	s1, err := a.GetRates(context.Background(), "GBPUSD", market.M5, 20)
	require.NoError(t, err)
	s2, err := b.GetRates(context.Background(), "GBPUSD", market.M5, 20)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
}

func TestGetRatesRejectsBadInput(t *testing.T) {
	t.Parallel()

	src := NewSource(1)
	_, err := src.GetRates(context.Background(), "EURUSD", market.Timeframe("H2"), 10)
	assert.ErrorIs(t, err, market.ErrDataUnavailable)

	_, err = src.GetRates(context.Background(), "EURUSD", market.H1, 0)
	assert.ErrorIs(t, err, market.ErrDataUnavailable)
}

func TestQuoteAndSpread(t *testing.T) {
	t.Parallel()

	src := NewSource(42)
	src.SetClock(fixedClock())

	q, err := src.GetCurrentPrice(context.Background(), "EURUSD")
	require.NoError(t, err)
	assert.Greater(t, q.Ask, q.Bid)

	spread, err := src.GetSpread(context.Background(), "EURUSD")
	require.NoError(t, err)
	assert.InDelta(t, 0.0002, spread, 1e-9)
}

func TestIsMarketOpen(t *testing.T) {
	t.Parallel()

	src := NewSource(1)
	saturday := time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)
	src.SetClock(func() time.Time { return saturday })

	open, err := src.IsMarketOpen(context.Background(), "EURUSD")
	require.NoError(t, err)
	assert.False(t, open)

	open, err = src.IsMarketOpen(context.Background(), "BTCUSD")
	require.NoError(t, err)
	assert.True(t, open)
}
