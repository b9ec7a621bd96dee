// Package analysis derives trend and volatility classifications from cached
// candle series.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tradebot/indicators"
	"tradebot/market"
	"tradebot/rates"
)

const (
	analysisWindow = 100
	trendSMAPeriod = 20
	atrPeriod      = 14

	// Current ATR relative to its window mean.
	highVolatilityRatio = 1.5
	lowVolatilityRatio  = 0.5
)

// Analyzer classifies market conditions for a symbol using H1 and H4 series
// from the rate cache.
type Analyzer struct {
	cache *rates.Cache
	log   *zap.Logger
}

// NewAnalyzer creates an analyzer reading from cache.
func NewAnalyzer(cache *rates.Cache, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{cache: cache, log: log}
}

// Analyze classifies symbol's market condition. Trend compares the latest
// close against a 20-period SMA on H1 and H4: agreement means trending,
// disagreement means ranging. Volatility compares the current 14-period ATR
// on H1 against its mean over the whole window. Missing data degrades to the
// unknown classification, never an error.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) MarketCondition {
	h1, err := a.cache.Get(ctx, symbol, market.H1, analysisWindow)
	if err != nil {
		a.log.Error("analysis skipped, H1 series unavailable",
			zap.String("symbol", symbol), zap.Error(err))
		return Unknown()
	}
	h4, err := a.cache.Get(ctx, symbol, market.H4, analysisWindow)
	if err != nil {
		a.log.Error("analysis skipped, H4 series unavailable",
			zap.String("symbol", symbol), zap.Error(err))
		return Unknown()
	}

	h1Trend, err := trendOf(h1)
	if err == nil {
		var h4Trend Trend
		h4Trend, err = trendOf(h4)
		if err == nil {
			cond := MarketCondition{Volatility: a.volatility(symbol, h1)}
			if h1Trend == h4Trend {
				cond.Condition = ConditionTrending
				cond.Trend = h1Trend
			} else {
				cond.Condition = ConditionRanging
				cond.Trend = TrendMixed
			}
			return cond
		}
	}

	a.log.Error("trend computation failed",
		zap.String("symbol", symbol), zap.Error(err))
	return Unknown()
}

// trendOf reports up when the latest close sits above the 20-period SMA,
// down otherwise.
func trendOf(series []market.Candle) (Trend, error) {
	closes := market.Closes(series)
	sma, err := indicators.SMA(closes, trendSMAPeriod)
	if err != nil {
		return TrendUnknown, err
	}
	if closes[len(closes)-1] > sma {
		return TrendUp, nil
	}
	return TrendDown, nil
}

func (a *Analyzer) volatility(symbol string, h1 []market.Candle) Volatility {
	series, err := indicators.ATRSeries(h1, atrPeriod)
	if err != nil || len(series) == 0 {
		a.log.Error("volatility computation failed",
			zap.String("symbol", symbol), zap.Error(err))
		return VolatilityUnknown
	}

	current := series[len(series)-1]
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	switch {
	case current > highVolatilityRatio*mean:
		return VolatilityHigh
	case current < lowVolatilityRatio*mean:
		return VolatilityLow
	default:
		return VolatilityNormal
	}
}

// IndicatorKind selects the indicator computed by Indicator.
type IndicatorKind string

const (
	IndicatorSMA IndicatorKind = "sma"
	IndicatorATR IndicatorKind = "atr"
	IndicatorRSI IndicatorKind = "rsi"
)

// Indicator computes a rolling indicator series over candles for chart and
// consumer use. SMA and RSI operate on close prices. Errors are the typed
// sentinels from the market package so callers can distinguish short series
// from bad requests.
func (a *Analyzer) Indicator(series []market.Candle, kind IndicatorKind, period int) ([]float64, error) {
	switch kind {
	case IndicatorSMA:
		return indicators.SMASeries(market.Closes(series), period)
	case IndicatorATR:
		return indicators.ATRSeries(series, period)
	case IndicatorRSI:
		return indicators.RSISeries(market.Closes(series), period)
	default:
		return nil, fmt.Errorf("analysis: unknown indicator %q: %w", kind, market.ErrComputation)
	}
}
