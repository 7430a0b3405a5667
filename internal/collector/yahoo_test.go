package collector

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Two sessions (2024-01-02, 2024-01-03 at 14:30 UTC), one holiday row of nulls.
const chartOK = `{"chart":{"result":[{
  "meta":{"symbol":"AAPL","gmtoffset":-18000,"exchangeTimezoneName":"America/New_York"},
  "timestamp":[1704205800,1704292200,1704378600],
  "indicators":{
    "quote":[{
      "open":[100,102,null],
      "high":[110,112,null],
      "low":[90,92,null],
      "close":[100,104,null],
      "volume":[1000,2000,null]}],
    "adjclose":[{"adjclose":[50,52,null]}]
  }}],"error":null}}`

const chartNotFound = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestFetcher(t *testing.T, srv *httptest.Server, autoAdjust bool) *YahooFetcher {
	f := NewYahooFetcher(srv.URL, "", 5*time.Second, autoAdjust, zaptest.NewLogger(t))
	f.Now = func() time.Time { return time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestYahooFetcher_FetchHistory(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(chartOK))
	}))
	defer srv.Close()

	f := newTestFetcher(t, srv, false)
	s, err := f.FetchHistory("AAPL", "2y", "1d")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "2y", gotRange)
	assert.Equal(t, "1d", gotInterval)

	require.Len(t, s.Bars, 2, "null row should be dropped")
	assert.Equal(t, "AAPL", s.Symbol)
	assert.False(t, s.Adjusted)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), s.Bars[0].Date)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), s.Bars[1].Date)
	assert.Equal(t, 100.0, s.Bars[0].Close)
	assert.Equal(t, 50.0, s.Bars[0].AdjClose)
	assert.Equal(t, int64(2000), s.Bars[1].Volume)
}

func TestYahooFetcher_AutoAdjust(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartOK))
	}))
	defer srv.Close()

	s, err := newTestFetcher(t, srv, true).FetchHistory("AAPL", "2y", "1d")
	require.NoError(t, err)
	require.Len(t, s.Bars, 2)
	assert.True(t, s.Adjusted)

	b := s.Bars[0]
	assert.InDelta(t, 50.0, b.Open, 1e-9)
	assert.InDelta(t, 55.0, b.High, 1e-9)
	assert.InDelta(t, 45.0, b.Low, 1e-9)
	assert.InDelta(t, 50.0, b.Close, 1e-9)
}

func TestYahooFetcher_UnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(chartNotFound))
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv, true).FetchHistory("NOPE", "2y", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

func TestYahooFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t, srv, true).FetchHistory("AAPL", "2y", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestYahooFetcher_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"OEDV"},"indicators":{"quote":[{}]}}],"error":null}}`))
	}))
	defer srv.Close()

	s, err := newTestFetcher(t, srv, true).FetchHistory("OEDV", "2y", "1d")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestYahooFetcher_EmptySymbol(t *testing.T) {
	f := NewYahooFetcher("http://127.0.0.1:0", "", time.Second, true, nil)
	_, err := f.FetchHistory("", "2y", "1d")
	assert.Error(t, err)
}

func TestYahooFetcher_SymbolMap(t *testing.T) {
	f := NewYahooFetcher("http://example.test/", "", time.Second, true, nil)
	u := f.chartURL("SPX", "2y", "1d")
	assert.Contains(t, u, "http://example.test/v8/finance/chart/%5EGSPC?")
}

func TestDedupeDates_KeepsLast(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s, err := (&MockFetcher{Bars: 3}).FetchHistory("X", "2y", "1d")
	require.NoError(t, err)
	bars := s.Bars
	bars[0].Date, bars[1].Date, bars[2].Date = d, d.AddDate(0, 0, 1), d.AddDate(0, 0, 1)
	bars[2].Close = math.Pi

	out := dedupeDates(bars)
	require.Len(t, out, 2)
	assert.Equal(t, math.Pi, out[1].Close)
}
