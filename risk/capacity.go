package risk

import (
	"context"
	"math"

	"go.uber.org/zap"

	"tradebot/broker"
)

// CapacityAdvisor derives how many lots the account's free margin can
// currently support.
type CapacityAdvisor struct {
	source broker.QuoteSource
	sizer  *Sizer
	log    *zap.Logger
}

// NewCapacityAdvisor creates an advisor using sizer for per-lot margin.
func NewCapacityAdvisor(source broker.QuoteSource, sizer *Sizer, log *zap.Logger) *CapacityAdvisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &CapacityAdvisor{source: source, sizer: sizer, log: log}
}

// MaxLotSize returns the largest lot size free margin supports for symbol,
// floored to the 0.01 lot step and clamped to the configured bounds. Missing
// data or a non-positive per-lot margin degrades to the minimum lot.
func (c *CapacityAdvisor) MaxLotSize(ctx context.Context, symbol string) float64 {
	limits := c.sizer.limits

	account, err := c.source.GetAccountInfo(ctx)
	if err != nil {
		c.log.Error("capacity fell back to minimum lot, account unavailable",
			zap.String("symbol", symbol), zap.Error(err))
		return limits.MinLot
	}

	marginPerLot := c.sizer.MarginRequired(ctx, symbol, 1.0)
	if marginPerLot <= 0 {
		c.log.Error("capacity fell back to minimum lot, margin per lot unavailable",
			zap.String("symbol", symbol))
		return limits.MinLot
	}

	maxLots := math.Floor(account.FreeMargin/marginPerLot*100) / 100
	if maxLots > limits.MaxLot {
		maxLots = limits.MaxLot
	}
	if maxLots < limits.MinLot {
		maxLots = limits.MinLot
	}
	return maxLots
}
