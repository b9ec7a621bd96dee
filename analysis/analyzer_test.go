package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebot/market"
	"tradebot/rates"
)

// stubSource serves fixed series per timeframe; absent timeframes report no
// data, exercising the analyzer's degrade path.
type stubSource struct {
	series map[market.Timeframe][]market.Candle
}

func (s *stubSource) GetRates(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	candles, ok := s.series[tf]
	if !ok {
		return nil, market.ErrDataUnavailable
	}
	return market.LastN(candles, count), nil
}

func (s *stubSource) GetCurrentPrice(ctx context.Context, symbol string) (market.Quote, error) {
	return market.Quote{}, market.ErrDataUnavailable
}

func (s *stubSource) GetSymbolInfo(ctx context.Context, symbol string) (market.SymbolInfo, error) {
	return market.SymbolInfo{}, market.ErrDataUnavailable
}

func (s *stubSource) GetAccountInfo(ctx context.Context) (market.Account, error) {
	return market.Account{}, market.ErrDataUnavailable
}

func (s *stubSource) IsMarketOpen(ctx context.Context, symbol string) (bool, error) {
	return true, nil
}

func (s *stubSource) GetSpread(ctx context.Context, symbol string) (float64, error) {
	return 0, market.ErrDataUnavailable
}

// rampSeries yields n candles whose closes move by step per bar with a
// constant intra-bar range, so trend is clear and volatility is flat.
func rampSeries(n int, start, step float64) []market.Candle {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, n)
	for i := range out {
		c := start + float64(i)*step
		out[i] = market.Candle{
			Time:  t0.Add(time.Duration(i) * time.Hour),
			Open:  c - step/2,
			High:  c + 0.0005,
			Low:   c - 0.0005,
			Close: c,
		}
	}
	return out
}

// flatRangeSeries yields flat closes with a per-bar range taken from ranges,
// so the ATR series is fully controlled.
func flatRangeSeries(ranges []float64) []market.Candle {
	t0 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.Candle, len(ranges))
	for i, r := range ranges {
		out[i] = market.Candle{
			Time:  t0.Add(time.Duration(i) * time.Hour),
			Open:  100,
			High:  100 + r/2,
			Low:   100 - r/2,
			Close: 100,
		}
	}
	return out
}

func analyzerWith(src *stubSource) *Analyzer {
	return NewAnalyzer(rates.NewCache(src, 0, nil), nil)
}

func TestAnalyzeTrendingUp(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: rampSeries(100, 1.0, 0.001),
		market.H4: rampSeries(100, 1.0, 0.001),
	}})

	got := a.Analyze(context.Background(), "EURUSD")
	assert.Equal(t, ConditionTrending, got.Condition)
	assert.Equal(t, TrendUp, got.Trend)
	assert.Equal(t, VolatilityNormal, got.Volatility)
}

func TestAnalyzeTrendingDown(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: rampSeries(100, 1.2, -0.001),
		market.H4: rampSeries(100, 1.2, -0.001),
	}})

	got := a.Analyze(context.Background(), "EURUSD")
	assert.Equal(t, ConditionTrending, got.Condition)
	assert.Equal(t, TrendDown, got.Trend)
}

func TestAnalyzeRangingOnDisagreement(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: rampSeries(100, 1.0, 0.001),
		market.H4: rampSeries(100, 1.2, -0.001),
	}})

	got := a.Analyze(context.Background(), "EURUSD")
	assert.Equal(t, ConditionRanging, got.Condition)
	assert.Equal(t, TrendMixed, got.Trend)
}

func TestAnalyzeUnknownWhenH4Missing(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: rampSeries(100, 1.0, 0.001),
		// H4 absent.
	}})

	got := a.Analyze(context.Background(), "EURUSD")
	assert.Equal(t, Unknown(), got)
}

func TestAnalyzeUnknownWhenH1Missing(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H4: rampSeries(100, 1.0, 0.001),
	}})

	got := a.Analyze(context.Background(), "EURUSD")
	assert.Equal(t, Unknown(), got)
}

func TestAnalyzeHighVolatility(t *testing.T) {
	t.Parallel()

	// Quiet market with a violent last stretch.
	ranges := make([]float64, 100)
	for i := range ranges {
		if i < 86 {
			ranges[i] = 1
		} else {
			ranges[i] = 10
		}
	}

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: flatRangeSeries(ranges),
		market.H4: rampSeries(100, 1.0, 0.001),
	}})

	got := a.Analyze(context.Background(), "XAUUSD")
	assert.Equal(t, VolatilityHigh, got.Volatility)
}

func TestAnalyzeLowVolatility(t *testing.T) {
	t.Parallel()

	// Violent history that went quiet.
	ranges := make([]float64, 100)
	for i := range ranges {
		if i < 86 {
			ranges[i] = 10
		} else {
			ranges[i] = 1
		}
	}

	a := analyzerWith(&stubSource{series: map[market.Timeframe][]market.Candle{
		market.H1: flatRangeSeries(ranges),
		market.H4: rampSeries(100, 1.0, 0.001),
	}})

	got := a.Analyze(context.Background(), "XAUUSD")
	assert.Equal(t, VolatilityLow, got.Volatility)
}

func TestIndicator(t *testing.T) {
	t.Parallel()

	a := analyzerWith(&stubSource{})
	series := rampSeries(30, 1.0, 0.001)

	sma, err := a.Indicator(series, IndicatorSMA, 20)
	require.NoError(t, err)
	assert.Len(t, sma, 11)

	rsi, err := a.Indicator(series, IndicatorRSI, 14)
	require.NoError(t, err)
	// Monotonically rising closes: RSI pegged at 100.
	assert.InDelta(t, 100.0, rsi[len(rsi)-1], 1e-9)

	atr, err := a.Indicator(series, IndicatorATR, 14)
	require.NoError(t, err)
	assert.Len(t, atr, 16)

	_, err = a.Indicator(series, IndicatorKind("macd"), 14)
	assert.ErrorIs(t, err, market.ErrComputation)

	_, err = a.Indicator(series[:5], IndicatorSMA, 20)
	assert.ErrorIs(t, err, market.ErrInsufficientHistory)
}
