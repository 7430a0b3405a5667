package saver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"TickerDump/internal/model"
)

// FrameSaver writes a series in column orientation keyed by
// "('<Field>', '<SYMBOL>')", each column mapping epoch-millisecond dates to values:
//
//	{"('Close', 'AAPL')": {"1697673600000": 175.46, ...}, "('High', 'AAPL')": {...}}
//
// This is the layout the dashboard under frontend/ parses.
type FrameSaver struct{}

func (FrameSaver) Extension() string { return "json" }

type column struct {
	name  string
	value func(b model.Bar) []byte
}

func frameColumns(adjusted bool) []column {
	price := func(get func(model.Bar) float64) func(model.Bar) []byte {
		return func(b model.Bar) []byte { return formatFloat(get(b)) }
	}
	cols := []column{}
	if !adjusted {
		cols = append(cols, column{"Adj Close", price(func(b model.Bar) float64 { return b.AdjClose })})
	}
	return append(cols,
		column{"Close", price(func(b model.Bar) float64 { return b.Close })},
		column{"High", price(func(b model.Bar) float64 { return b.High })},
		column{"Low", price(func(b model.Bar) float64 { return b.Low })},
		column{"Open", price(func(b model.Bar) float64 { return b.Open })},
		column{"Volume", func(b model.Bar) []byte { return strconv.AppendInt(nil, b.Volume, 10) }},
	)
}

func (FrameSaver) Encode(series *model.PriceSeries) ([]byte, error) {
	if series == nil {
		return nil, fmt.Errorf("nil series")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for ci, col := range frameColumns(series.Adjusted) {
		if ci > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprintf("('%s', '%s')", col.name, series.Symbol))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":{")
		for bi, b := range series.Bars {
			if bi > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strconv.FormatInt(b.DateMillis(), 10))
			buf.WriteString(`":`)
			buf.Write(col.value(b))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// formatFloat rounds to 10 decimal places and renders NaN and infinities as null.
func formatFloat(v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null")
	}
	v = math.Round(v*1e10) / 1e10
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.AppendFloat(nil, v, 'e', -1, 64)
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64)
}
