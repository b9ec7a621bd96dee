package market

import "errors"

// Failure taxonomy for data and computation problems. Public operations in
// the core never propagate these to callers; they degrade to documented
// defaults (minimum lot, empty series, unknown condition, zero value) and
// log the condition. The sentinels exist so internal code and tests can tell
// "no data" apart from "computed a benign zero".
var (
	// ErrDataUnavailable means the quote source returned no data.
	ErrDataUnavailable = errors.New("market: data unavailable")

	// ErrInsufficientHistory means a series is shorter than the requested
	// window.
	ErrInsufficientHistory = errors.New("market: insufficient history")

	// ErrComputation means arithmetic on malformed input, e.g. a zero pip
	// distance.
	ErrComputation = errors.New("market: computation error")
)
