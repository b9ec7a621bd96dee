package market

import (
	"fmt"
	"time"
)

// Timeframe identifies a candle granularity.
type Timeframe string

const (
	M1  Timeframe = "M1"  // 1 minute
	M5  Timeframe = "M5"  // 5 minutes
	M15 Timeframe = "M15" // 15 minutes
	M30 Timeframe = "M30" // 30 minutes
	H1  Timeframe = "H1"  // 1 hour
	H4  Timeframe = "H4"  // 4 hours
	D1  Timeframe = "D1"  // 1 day
)

var timeframeSeconds = map[Timeframe]int64{
	M1:  60,
	M5:  5 * 60,
	M15: 15 * 60,
	M30: 30 * 60,
	H1:  60 * 60,
	H4:  4 * 60 * 60,
	D1:  24 * 60 * 60,
}

// Timeframes returns all supported timeframes in ascending duration order.
func Timeframes() []Timeframe {
	return []Timeframe{M1, M5, M15, M30, H1, H4, D1}
}

// Seconds returns the canonical duration of one bar in seconds.
func (tf Timeframe) Seconds() int64 {
	return timeframeSeconds[tf]
}

// Duration returns the canonical duration of one bar.
func (tf Timeframe) Duration() time.Duration {
	return time.Duration(timeframeSeconds[tf]) * time.Second
}

// Valid reports whether tf is one of the supported timeframes.
func (tf Timeframe) Valid() bool {
	_, ok := timeframeSeconds[tf]
	return ok
}

// ParseTimeframe converts a string like "H1" into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.Valid() {
		return "", fmt.Errorf("market: unknown timeframe %q", s)
	}
	return tf, nil
}
