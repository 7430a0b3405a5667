package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TickerDump/internal/model"
)

func makeBars(n int) []model.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		p := float64(100 + i)
		bars[i] = model.Bar{Date: start.AddDate(0, 0, i), Open: p, High: p + 1, Low: p - 1, Close: p, AdjClose: p}
	}
	return bars
}

func TestSeriesSpan(t *testing.T) {
	bars := makeBars(10)
	bars[3].High = math.NaN()

	s, err := SeriesSpan(bars)
	require.NoError(t, err)
	assert.Equal(t, bars[0].Date, s.First)
	assert.Equal(t, bars[9].Date, s.Last)
	assert.Equal(t, 110.0, s.High)
	assert.Equal(t, 99.0, s.Low)
}

func TestSeriesSpan_Empty(t *testing.T) {
	_, err := SeriesSpan(nil)
	assert.Error(t, err)
}

func TestSeriesSpan_AllNaN(t *testing.T) {
	bars := []model.Bar{{High: math.NaN(), Low: math.NaN()}}
	_, err := SeriesSpan(bars)
	assert.Error(t, err)
}
