package collector

import "TickerDump/internal/model"

// Fetcher defines the interface for fetching historical price series.
type Fetcher interface {
	// FetchHistory returns the series for symbol over a trailing period
	// (e.g. "2y") sampled at interval (e.g. "1d").
	FetchHistory(symbol, period, interval string) (*model.PriceSeries, error)
	Name() string
}
