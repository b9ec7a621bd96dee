// Package risk converts risk budgets into bounded position sizes and
// derives margin requirements and account capacity.
package risk

import (
	"context"
	"math"

	"go.uber.org/zap"

	"tradebot/broker"
	"tradebot/market"
)

// Limits bound every sizing decision.
type Limits struct {
	DefaultRiskPercent float64
	MinLot             float64
	MaxLot             float64
}

// DefaultLimits returns the standard retail bounds: 1% risk, 0.01 to 10.0
// lots.
func DefaultLimits() Limits {
	return Limits{
		DefaultRiskPercent: 1.0,
		MinLot:             0.01,
		MaxLot:             10.0,
	}
}

// ClampPolicy records which rule produced the final lot size, so callers and
// tests can tell a risk-derived size from a degraded fallback.
type ClampPolicy string

const (
	// PolicyRisk means the pure risk-derived size was inside the bounds.
	PolicyRisk ClampPolicy = "risk"
	// PolicyMinClamp means the risk-derived size was raised to the minimum.
	PolicyMinClamp ClampPolicy = "min_clamp"
	// PolicyMaxClamp means the risk-derived size was capped at the maximum.
	PolicyMaxClamp ClampPolicy = "max_clamp"
	// PolicyFallbackMin means data was unavailable or the stop distance was
	// zero, and the conservative minimum was returned.
	PolicyFallbackMin ClampPolicy = "fallback_min"
)

// SizingRequest is the input to LotSize. A zero RiskPercent selects the
// configured default.
type SizingRequest struct {
	Symbol      string
	EntryPrice  float64
	StopLoss    float64
	RiskPercent float64
}

// SizingResult is a clamped lot size plus how it was derived.
type SizingResult struct {
	Lots       float64
	Policy     ClampPolicy
	RiskAmount float64
	RiskPips   float64
}

// Sizer converts a risk budget and stop distance into a bounded lot size.
type Sizer struct {
	source broker.QuoteSource
	specs  market.SpecTable
	limits Limits
	log    *zap.Logger
}

// NewSizer creates a sizer. A nil specs table uses the built-in defaults.
func NewSizer(source broker.QuoteSource, specs market.SpecTable, limits Limits, log *zap.Logger) *Sizer {
	if specs == nil {
		specs = market.DefaultSpecs()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sizer{source: source, specs: specs, limits: limits, log: log}
}

// LotSize sizes a position so that hitting the stop loses RiskPercent of the
// account balance. The result is clamped to [MinLot, MaxLot] and rounded to
// two decimal places. Missing account data, a non-positive balance, or a
// zero stop distance all degrade to the minimum lot rather than failing.
func (s *Sizer) LotSize(ctx context.Context, req SizingRequest) SizingResult {
	fallback := SizingResult{Lots: s.limits.MinLot, Policy: PolicyFallbackMin}

	account, err := s.source.GetAccountInfo(ctx)
	if err != nil {
		s.log.Error("sizing fell back to minimum lot, account unavailable",
			zap.String("symbol", req.Symbol), zap.Error(err))
		return fallback
	}
	if account.Balance <= 0 {
		s.log.Error("sizing fell back to minimum lot, non-positive balance",
			zap.String("symbol", req.Symbol), zap.Float64("balance", account.Balance))
		return fallback
	}

	riskPct := req.RiskPercent
	if riskPct <= 0 {
		riskPct = s.limits.DefaultRiskPercent
	}
	riskAmount := account.Balance * riskPct / 100

	spec, known := s.specs.Lookup(req.Symbol)
	if !known {
		s.log.Debug("symbol not in spec table, using derived defaults",
			zap.String("symbol", req.Symbol))
	}

	riskPips := math.Abs(req.EntryPrice-req.StopLoss) / spec.PipSize
	if riskPips <= 0 {
		s.log.Error("sizing fell back to minimum lot, zero stop distance",
			zap.String("symbol", req.Symbol),
			zap.Float64("entry", req.EntryPrice),
			zap.Float64("stop", req.StopLoss))
		return fallback
	}

	lots := riskAmount / (riskPips * spec.PipValue)
	policy := PolicyRisk
	switch {
	case lots < s.limits.MinLot:
		lots = s.limits.MinLot
		policy = PolicyMinClamp
	case lots > s.limits.MaxLot:
		lots = s.limits.MaxLot
		policy = PolicyMaxClamp
	}

	return SizingResult{
		Lots:       math.Round(lots*100) / 100,
		Policy:     policy,
		RiskAmount: riskAmount,
		RiskPips:   riskPips,
	}
}

// PositionValue returns the notional value of lots of symbol at the live mid
// price, or 0 when no quote is available.
func (s *Sizer) PositionValue(ctx context.Context, symbol string, lots float64) float64 {
	quote, err := s.source.GetCurrentPrice(ctx, symbol)
	if err != nil {
		s.log.Error("position value unavailable, no quote",
			zap.String("symbol", symbol), zap.Error(err))
		return 0
	}

	spec, _ := s.specs.Lookup(symbol)
	return lots * spec.ContractSize * quote.Mid()
}

// defaultMarginRate corresponds to 1:100 leverage.
const defaultMarginRate = 0.01

// MarginRequired returns the margin the broker reserves for lots of symbol,
// or 0 when the position value or symbol metadata is unavailable.
func (s *Sizer) MarginRequired(ctx context.Context, symbol string, lots float64) float64 {
	value := s.PositionValue(ctx, symbol, lots)
	if value == 0 {
		return 0
	}

	info, err := s.source.GetSymbolInfo(ctx, symbol)
	if err != nil {
		s.log.Error("margin unavailable, no symbol metadata",
			zap.String("symbol", symbol), zap.Error(err))
		return 0
	}

	rate := info.MarginRate
	if rate <= 0 {
		rate = defaultMarginRate
	}
	return value * rate
}
