package recorder

import "time"

// RunEvent records one job execution.
type RunEvent struct {
	RunID      string
	Job        string
	OutputDir  string
	Tickers    int
	Written    int
	Status     string // "OK" or "FAILED"
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// DownloadEvent records one file written by a run.
type DownloadEvent struct {
	RunID     string
	Job       string
	Ticker    string
	Path      string
	Bars      int
	Bytes     int
	FirstDate string // YYYY-MM-DD, empty for an empty series
	LastDate  string
	FetchedAt time.Time
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecordDownload(evt *DownloadEvent) error
	RecentRuns(limit int) ([]RunEvent, error)
	Downloads(runID string) ([]DownloadEvent, error)
	Close() error
}

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)
