package market

import "strings"

// SymbolSpec holds the static trading constants for one symbol.
//
// PipValue is a flat constant in account currency per pip per standard lot.
// That is numerically wrong for cross-currency accounts (it ignores the
// quote-to-account conversion); the simplification is deliberate and kept.
type SymbolSpec struct {
	PipSize      float64
	PipValue     float64
	ContractSize float64
}

// SpecTable maps symbol names to their specs. It is immutable after
// construction and injected into the components that need it, so tests can
// supply arbitrary symbol sets.
type SpecTable map[string]SymbolSpec

// Lookup returns the spec for symbol. Unknown symbols fall back to defaults
// derived from the symbol name (a configuration gap, not a failure); the
// second return reports whether the table had an explicit entry.
func (t SpecTable) Lookup(symbol string) (SymbolSpec, bool) {
	if spec, ok := t[symbol]; ok {
		return spec, true
	}
	return fallbackSpec(symbol), false
}

func fallbackSpec(symbol string) SymbolSpec {
	spec := SymbolSpec{PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000}
	switch {
	case strings.Contains(symbol, "XAU"):
		spec = SymbolSpec{PipSize: 0.1, PipValue: 10.0, ContractSize: 100}
	case strings.Contains(symbol, "BTC"):
		spec = SymbolSpec{PipSize: 1.0, PipValue: 10.0, ContractSize: 1}
	case strings.HasSuffix(symbol, "JPY"):
		spec.PipSize = 0.01
	}
	return spec
}

// DefaultSpecs returns the built-in spec table covering the majors plus the
// metals and crypto pairs the bot trades out of the box.
func DefaultSpecs() SpecTable {
	return SpecTable{
		"EURUSD": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"GBPUSD": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"USDCHF": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"AUDUSD": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"USDCAD": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"NZDUSD": {PipSize: 0.0001, PipValue: 10.0, ContractSize: 100_000},
		"USDJPY": {PipSize: 0.01, PipValue: 10.0, ContractSize: 100_000},
		"EURJPY": {PipSize: 0.01, PipValue: 10.0, ContractSize: 100_000},
		"GBPJPY": {PipSize: 0.01, PipValue: 10.0, ContractSize: 100_000},
		"XAUUSD": {PipSize: 0.1, PipValue: 10.0, ContractSize: 100},
		"XAGUSD": {PipSize: 0.01, PipValue: 10.0, ContractSize: 5_000},
		"BTCUSD": {PipSize: 1.0, PipValue: 10.0, ContractSize: 1},
		"ETHUSD": {PipSize: 0.1, PipValue: 10.0, ContractSize: 1},
	}
}
