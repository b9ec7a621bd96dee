package indicators

// RSI calculates the relative strength index of the last period price
// deltas. Gains and losses are averaged with a plain rolling mean, not
// Wilder's exponential smoothing; values therefore differ from most charting
// packages and the simplification is intentional.
//
// When the window holds no losses the textbook formula divides by zero.
// RSI returns 100 in that case (the window only rose) and 50 for a
// completely flat window.
func RSI(closes []float64, period int) (float64, error) {
	if err := checkWindow(len(closes), period+1, period); err != nil {
		return 0, err
	}
	return rsiFromWindow(closes[len(closes)-period-1:], period), nil
}

// RSISeries calculates the rolling RSI over closes; the result has
// len(closes)-period entries.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if err := checkWindow(len(closes), period+1, period); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(closes)-period)
	for i := 0; i+period < len(closes); i++ {
		out = append(out, rsiFromWindow(closes[i:i+period+1], period))
	}
	return out, nil
}

// rsiFromWindow computes RSI from exactly period+1 closes.
func rsiFromWindow(window []float64, period int) float64 {
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
