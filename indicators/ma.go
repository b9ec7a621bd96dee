package indicators

// SMA calculates the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if err := checkWindow(len(values), period, period); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// SMASeries calculates the rolling simple moving average over values. The
// result has len(values)-period+1 entries; entry i covers
// values[i : i+period].
func SMASeries(values []float64, period int) ([]float64, error) {
	if err := checkWindow(len(values), period, period); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out, nil
}
