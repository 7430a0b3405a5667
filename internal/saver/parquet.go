package saver

import (
	"bytes"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"TickerDump/internal/model"
)

// ParquetSaver writes a series as a single Parquet file.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

type parquetRow struct {
	Symbol   string  `parquet:"symbol,dict"`
	DateMs   int64   `parquet:"date_ms"`
	Open     float64 `parquet:"open"`
	High     float64 `parquet:"high"`
	Low      float64 `parquet:"low"`
	Close    float64 `parquet:"close"`
	AdjClose float64 `parquet:"adj_close"`
	Volume   int64   `parquet:"volume"`
}

func (ParquetSaver) Encode(series *model.PriceSeries) ([]byte, error) {
	if series == nil {
		return nil, fmt.Errorf("nil series")
	}
	rows := make([]parquetRow, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = parquetRow{
			Symbol:   series.Symbol,
			DateMs:   b.DateMillis(),
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			AdjClose: b.AdjClose,
			Volume:   b.Volume,
		}
	}
	var buf bytes.Buffer
	if err := parquet.Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
