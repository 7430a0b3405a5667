package collector

import (
	"fmt"
	"hash/fnv"
	"time"

	"TickerDump/internal/model"
)

// MockFetcher returns deterministic bars for development, --dry-run and tests.
type MockFetcher struct {
	Bars  int              // bars per series, 0 means 504 (two years of sessions)
	Fail  map[string]error // per-symbol failures
	Now   func() time.Time
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol, period, interval string) (*model.PriceSeries, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Fail[symbol]; ok {
		return nil, err
	}
	if symbol == "" {
		return nil, fmt.Errorf("mock: empty symbol")
	}
	n := m.Bars
	if n == 0 {
		n = 504
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Interval:  interval,
		Adjusted:  true,
		Bars:      generateMockBars(symbol, n, now()),
		FetchedAt: now(),
	}, nil
}

// generateMockBars derives a base price from the symbol so series differ per ticker.
func generateMockBars(symbol string, count int, end time.Time) []model.Bar {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	basePrice := 20 + float64(h.Sum32()%500)

	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:     end.AddDate(0, 0, -(count - i)),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000 + int64(i),
		}
	}
	return bars
}
