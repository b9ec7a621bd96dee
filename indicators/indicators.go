// Package indicators provides the technical analysis primitives used by the
// market analyzer: simple moving average, average true range, and relative
// strength index. All of them are plain rolling means over a fixed window;
// none use exponential smoothing.
package indicators

import (
	"fmt"

	"tradebot/market"
)

func checkWindow(have, need, period int) error {
	if period <= 0 {
		return fmt.Errorf("indicators: period must be positive, got %d: %w", period, market.ErrComputation)
	}
	if have < need {
		return fmt.Errorf("indicators: need %d values, got %d: %w", need, have, market.ErrInsufficientHistory)
	}
	return nil
}
