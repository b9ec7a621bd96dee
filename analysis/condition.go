package analysis

// Condition classifies the overall market state.
type Condition string

const (
	ConditionTrending Condition = "trending"
	ConditionRanging  Condition = "ranging"
	ConditionUnknown  Condition = "unknown"
)

// Trend classifies price direction.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendMixed   Trend = "mixed"
	TrendUnknown Trend = "unknown"
)

// Volatility classifies the current range relative to recent history.
type Volatility string

const (
	VolatilityLow     Volatility = "low"
	VolatilityNormal  Volatility = "normal"
	VolatilityHigh    Volatility = "high"
	VolatilityUnknown Volatility = "unknown"
)

// MarketCondition is the derived classification for one symbol. It is
// recomputed on every query and never persisted by the analyzer itself.
type MarketCondition struct {
	Condition  Condition
	Trend      Trend
	Volatility Volatility
}

// Unknown is the conservative default returned when data is missing;
// downstream logic treats it as "skip, don't act".
func Unknown() MarketCondition {
	return MarketCondition{
		Condition:  ConditionUnknown,
		Trend:      TrendUnknown,
		Volatility: VolatilityUnknown,
	}
}
