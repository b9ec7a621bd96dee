package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) candlestick data for one
// bar. Candles are immutable once stored in the rate cache.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote is a live bid/ask pair for a symbol. Quotes are transient and never
// cached; always fetch a fresh one.
type Quote struct {
	Bid float64
	Ask float64
}

// Mid returns the bid/ask midpoint.
func (q Quote) Mid() float64 {
	return (q.Bid + q.Ask) / 2
}

// Spread returns the ask-bid distance in price units.
func (q Quote) Spread() float64 {
	return q.Ask - q.Bid
}

// Account is a read-only snapshot of the trading account, fetched on demand
// and owned by the caller that requested it.
type Account struct {
	Balance    float64
	Equity     float64
	FreeMargin float64
	Currency   string
	Login      int64
	Server     string
}

// SymbolInfo is broker-provided symbol metadata.
type SymbolInfo struct {
	Name       string
	Digits     int
	MarginRate float64 // fraction of notional required as collateral, e.g. 0.01 for 1:100
}
