package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSQLiteRecorder_RunsAndDownloads(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer r.Close()

	start := time.Date(2025, 1, 2, 22, 30, 0, 0, time.UTC)
	require.NoError(t, r.RecordDownload(&DownloadEvent{RunID: "r1", Job: "data", Ticker: "AAPL", Path: "./data/AAPL.json", Bars: 502, Bytes: 4096, FirstDate: "2023-01-03", LastDate: "2025-01-02", FetchedAt: start}))
	require.NoError(t, r.RecordDownload(&DownloadEvent{RunID: "r1", Job: "data", Ticker: "BAC", Path: "./data/BAC.json", Bars: 502}))
	require.NoError(t, r.RecordRun(&RunEvent{RunID: "r1", Job: "data", OutputDir: "./data/", Tickers: 3, Written: 2, Status: StatusFailed, Error: "boom", StartedAt: start, FinishedAt: start.Add(time.Minute)}))
	require.NoError(t, r.RecordRun(&RunEvent{RunID: "r2", Job: "frontend", Tickers: 1, Written: 1, Status: StatusOK, StartedAt: start.Add(time.Hour), FinishedAt: start.Add(time.Hour)}))

	runs, err := r.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].RunID)
	assert.Equal(t, StatusFailed, runs[1].Status)
	assert.Equal(t, "boom", runs[1].Error)
	assert.True(t, runs[1].StartedAt.Equal(start))

	downloads, err := r.Downloads("r1")
	require.NoError(t, err)
	require.Len(t, downloads, 2)
	assert.Equal(t, "AAPL", downloads[0].Ticker)
	assert.Equal(t, 4096, downloads[0].Bytes)
	assert.Equal(t, "2025-01-02", downloads[0].LastDate)
	assert.True(t, downloads[0].FetchedAt.Equal(start))
	assert.Equal(t, "BAC", downloads[1].Ticker)
	assert.False(t, downloads[1].FetchedAt.IsZero())

	none, err := r.Downloads("r2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(&RunEvent{RunID: "r1", Job: "data", Status: StatusOK, StartedAt: time.Now(), FinishedAt: time.Now()}))
	require.NoError(t, r.Close())

	r, err = NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	defer r.Close()
	runs, err := r.RecentRuns(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&RunEvent{}))
	assert.NoError(t, r.RecordDownload(&DownloadEvent{}))
	runs, err := r.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	downloads, err := r.Downloads("x")
	assert.NoError(t, err)
	assert.Empty(t, downloads)
	assert.NoError(t, r.Close())
}
