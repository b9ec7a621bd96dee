// Package journal persists the bot's derived history: market-condition
// snapshots and sizing decisions. Trade history is deliberately out of
// scope; the journal records what the core computed, not what was executed.
package journal

import "time"

// ConditionRecord is one market-condition snapshot for a symbol.
type ConditionRecord struct {
	ID         string
	Time       time.Time
	Symbol     string
	Condition  string
	Trend      string
	Volatility string
}

// SizingRecord is one position-sizing decision.
type SizingRecord struct {
	ID          string
	Time        time.Time
	Symbol      string
	EntryPrice  float64
	StopLoss    float64
	RiskPercent float64
	Lots        float64
	Policy      string
}

// Journal stores condition snapshots and sizing decisions.
type Journal interface {
	RecordCondition(ConditionRecord) error
	RecordSizing(SizingRecord) error
	Close() error
}
