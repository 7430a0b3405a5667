package model

import "time"

// PriceSeries holds the history fetched for one symbol.
type PriceSeries struct {
	Symbol    string
	Period    string
	Interval  string
	Adjusted  bool // OHLC already scaled by the adjusted close
	Bars      []Bar
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}
