package calculator

import (
	"errors"
	"math"
	"time"

	"TickerDump/internal/model"
)

// Span summarizes the extent of a downloaded series.
type Span struct {
	First time.Time
	Last  time.Time
	High  float64
	Low   float64
}

// SeriesSpan returns the first and last trading dates and the highest high and
// lowest low across all bars. NaN prices are ignored.
func SeriesSpan(bars []model.Bar) (Span, error) {
	if len(bars) == 0 {
		return Span{}, errors.New("no bars provided")
	}
	s := Span{
		First: bars[0].Date,
		Last:  bars[len(bars)-1].Date,
		High:  math.Inf(-1),
		Low:   math.Inf(1),
	}
	for _, b := range bars {
		if !math.IsNaN(b.High) && b.High > s.High {
			s.High = b.High
		}
		if !math.IsNaN(b.Low) && b.Low < s.Low {
			s.Low = b.Low
		}
	}
	if math.IsInf(s.High, -1) || math.IsInf(s.Low, 1) {
		return Span{}, errors.New("no priced bars")
	}
	return s, nil
}
