package saver

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"TickerDump/internal/model"
)

// CSVSaver writes a series as CSV (header: Date,Open,High,Low,Close,Adj Close,Volume).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Encode(series *model.PriceSeries) ([]byte, error) {
	if series == nil {
		return nil, fmt.Errorf("nil series")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}); err != nil {
		return nil, err
	}
	for _, b := range series.Bars {
		if err := w.Write([]string{
			b.Date.UTC().Format("2006-01-02"),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.AdjClose),
			strconv.FormatInt(b.Volume, 10),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func floatStr(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
