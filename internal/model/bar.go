package model

import (
	"math"
	"time"
)

// Bar is one trading day of a price series.
// Missing provider values are NaN.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// DateMillis returns the trading date as epoch milliseconds at UTC midnight.
func (b Bar) DateMillis() int64 {
	d := b.Date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// Empty reports whether the provider returned no prices for the day.
func (b Bar) Empty() bool {
	return math.IsNaN(b.Open) && math.IsNaN(b.High) && math.IsNaN(b.Low) && math.IsNaN(b.Close)
}
