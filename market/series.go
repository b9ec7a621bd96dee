package market

// LastN returns a copy of the most recent n candles from series. If the
// series holds fewer than n candles the whole series is copied. The copy
// keeps callers from mutating cache-owned storage.
func LastN(series []Candle, n int) []Candle {
	if n > len(series) {
		n = len(series)
	}
	out := make([]Candle, n)
	copy(out, series[len(series)-n:])
	return out
}

// Ascending reports whether candle timestamps strictly increase.
func Ascending(series []Candle) bool {
	for i := 1; i < len(series); i++ {
		if !series[i].Time.After(series[i-1].Time) {
			return false
		}
	}
	return true
}

// Closes extracts the close prices from a candle series.
func Closes(series []Candle) []float64 {
	out := make([]float64, len(series))
	for i, c := range series {
		out[i] = c.Close
	}
	return out
}
