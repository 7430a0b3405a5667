package saver

import (
	"encoding/json"
	"fmt"
	"math"

	"TickerDump/internal/model"
)

// RecordsSaver writes a series as a JSON array of daily rows.
type RecordsSaver struct{}

func (RecordsSaver) Extension() string { return "json" }

type record struct {
	Date     string   `json:"date"`
	Open     *float64 `json:"open"`
	High     *float64 `json:"high"`
	Low      *float64 `json:"low"`
	Close    *float64 `json:"close"`
	AdjClose *float64 `json:"adj_close,omitempty"`
	Volume   int64    `json:"volume"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (RecordsSaver) Encode(series *model.PriceSeries) ([]byte, error) {
	if series == nil {
		return nil, fmt.Errorf("nil series")
	}
	rows := make([]record, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = record{
			Date:   b.Date.UTC().Format("2006-01-02"),
			Open:   nullable(b.Open),
			High:   nullable(b.High),
			Low:    nullable(b.Low),
			Close:  nullable(b.Close),
			Volume: b.Volume,
		}
		if !series.Adjusted {
			rows[i].AdjClose = nullable(b.AdjClose)
		}
	}
	return json.MarshalIndent(rows, "", "  ")
}
