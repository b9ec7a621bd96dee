// Package broker defines the contract between the trading core and the
// broker connectivity layer. The core only ever reads through this seam;
// order placement lives entirely on the other side of it.
package broker

import (
	"context"

	"tradebot/market"
)

// QuoteSource supplies market and account data. Implementations wrap a live
// broker session; broker/sim provides a synthetic one for development.
//
// All methods return market.ErrDataUnavailable (possibly wrapped) when the
// underlying session has no data for the request.
type QuoteSource interface {
	// GetRates returns up to count candles for symbol at tf, oldest first.
	GetRates(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error)

	// GetCurrentPrice returns the live bid/ask for symbol.
	GetCurrentPrice(ctx context.Context, symbol string) (market.Quote, error)

	// GetSymbolInfo returns broker metadata for symbol.
	GetSymbolInfo(ctx context.Context, symbol string) (market.SymbolInfo, error)

	// GetAccountInfo returns a snapshot of the trading account.
	GetAccountInfo(ctx context.Context) (market.Account, error)

	// IsMarketOpen reports whether symbol is currently tradeable.
	IsMarketOpen(ctx context.Context, symbol string) (bool, error)

	// GetSpread returns the current spread for symbol in price units.
	GetSpread(ctx context.Context, symbol string) (float64, error)
}
