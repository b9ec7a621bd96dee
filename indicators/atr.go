package indicators

import (
	"math"

	"tradebot/market"
)

// TrueRange calculates the true range of current given the previous candle:
// the largest of high-low, |high-prevClose| and |low-prevClose|.
func TrueRange(current, previous market.Candle) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// TrueRanges calculates the per-bar true range series. The result has
// len(candles)-1 entries, one per candle after the first.
func TrueRanges(candles []market.Candle) []float64 {
	if len(candles) < 2 {
		return nil
	}
	out := make([]float64, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		out[i-1] = TrueRange(candles[i], candles[i-1])
	}
	return out
}

// ATR calculates the average true range over the last period bars as a plain
// rolling mean of true range. Needs period+1 candles because true range
// requires a previous close.
func ATR(candles []market.Candle, period int) (float64, error) {
	if err := checkWindow(len(candles), period+1, period); err != nil {
		return 0, err
	}
	return SMA(TrueRanges(candles), period)
}

// ATRSeries calculates the rolling ATR over candles; the result has
// len(candles)-period entries.
func ATRSeries(candles []market.Candle, period int) ([]float64, error) {
	if err := checkWindow(len(candles), period+1, period); err != nil {
		return nil, err
	}
	return SMASeries(TrueRanges(candles), period)
}
