package dumper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"TickerDump/internal/calculator"
	"TickerDump/internal/collector"
	"TickerDump/internal/config"
	"TickerDump/internal/recorder"
	"TickerDump/internal/saver"
)

// ErrEmptySymbol is returned for a blank ticker in a job.
var ErrEmptySymbol = errors.New("empty ticker symbol")

// TickerError reports the ticker at which a job stopped.
type TickerError struct {
	Job    string
	Index  int
	Ticker string
	Err    error
}

func (e *TickerError) Error() string {
	return fmt.Sprintf("job %s: ticker %q (#%d): %v", e.Job, e.Ticker, e.Index, e.Err)
}

func (e *TickerError) Unwrap() error { return e.Err }

// Entry is one file written by a run.
type Entry struct {
	Ticker string
	Path   string
	Bars   int
	Bytes  int
}

// Result lists what a run wrote, in ticker order.
type Result struct {
	Job     string
	RunID   string
	Entries []Entry
}

// Dumper fetches each ticker of a job and writes one file per ticker.
type Dumper struct {
	Fetcher  collector.Fetcher
	Saver    saver.Saver
	Recorder recorder.Recorder
	Logger   *zap.Logger
	Out      io.Writer // receives one "Downloaded <path>" line per file
	Period   string
	Interval string
	NewRunID func() string
	Now      func() time.Time
}

// New creates a Dumper printing to stdout.
func New(f collector.Fetcher, s saver.Saver, rec recorder.Recorder, logger *zap.Logger, period, interval string) *Dumper {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dumper{
		Fetcher:  f,
		Saver:    s,
		Recorder: rec,
		Logger:   logger,
		Out:      os.Stdout,
		Period:   period,
		Interval: interval,
		NewRunID: uuid.NewString,
		Now:      time.Now,
	}
}

// Run processes the job's tickers in order. The first failure stops the run:
// files already written are left in place and no later ticker is fetched.
func (d *Dumper) Run(job config.Job) (*Result, error) {
	res := &Result{Job: job.Name, RunID: d.NewRunID()}
	started := d.Now()
	log := d.Logger.With(zap.String("job", job.Name), zap.String("run_id", res.RunID))
	log.Info("run started",
		zap.String("provider", d.Fetcher.Name()),
		zap.String("dir", job.OutputDir),
		zap.Int("tickers", len(job.Tickers)),
		zap.String("period", d.Period))

	if job.CreateDir {
		if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
			err = fmt.Errorf("job %s: create output dir: %w", job.Name, err)
			d.finish(job, res, started, err)
			return res, err
		}
	}

	for i, ticker := range job.Tickers {
		entry, err := d.dumpOne(job, res.RunID, ticker)
		if err != nil {
			terr := &TickerError{Job: job.Name, Index: i, Ticker: ticker, Err: err}
			log.Error("run aborted",
				zap.String("ticker", ticker),
				zap.Int("index", i),
				zap.Int("written", len(res.Entries)),
				zap.Error(err))
			d.finish(job, res, started, terr)
			return res, terr
		}
		res.Entries = append(res.Entries, entry)
		fmt.Fprintf(d.Out, "Downloaded %s\n", entry.Path)
	}

	d.finish(job, res, started, nil)
	log.Info("run finished", zap.Int("written", len(res.Entries)), zap.Duration("took", d.Now().Sub(started)))
	return res, nil
}

// RunAll runs jobs one after another and stops at the first failing job.
func (d *Dumper) RunAll(jobs []config.Job) ([]*Result, error) {
	results := make([]*Result, 0, len(jobs))
	for _, job := range jobs {
		res, err := d.Run(job)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (d *Dumper) dumpOne(job config.Job, runID, ticker string) (Entry, error) {
	if ticker == "" {
		return Entry{}, ErrEmptySymbol
	}
	series, err := d.Fetcher.FetchHistory(ticker, d.Period, d.Interval)
	if err != nil {
		return Entry{}, fmt.Errorf("fetch: %w", err)
	}
	path := saver.Path(job.OutputDir, ticker, d.Saver.Extension())
	n, err := saver.WriteFile(d.Saver, series, path)
	if err != nil {
		return Entry{}, fmt.Errorf("write %s: %w", path, err)
	}

	entry := Entry{Ticker: ticker, Path: path, Bars: series.Len(), Bytes: n}
	evt := &recorder.DownloadEvent{
		RunID:     runID,
		Job:       job.Name,
		Ticker:    ticker,
		Path:      path,
		Bars:      entry.Bars,
		Bytes:     n,
		FetchedAt: series.FetchedAt,
	}
	fields := []zap.Field{
		zap.String("ticker", ticker),
		zap.String("path", path),
		zap.Int("bars", entry.Bars),
		zap.String("size", humanize.Bytes(uint64(n))),
	}
	if span, err := calculator.SeriesSpan(series.Bars); err == nil {
		evt.FirstDate = span.First.Format("2006-01-02")
		evt.LastDate = span.Last.Format("2006-01-02")
		fields = append(fields,
			zap.String("from", evt.FirstDate),
			zap.String("to", evt.LastDate),
			zap.Float64("high", span.High),
			zap.Float64("low", span.Low))
	} else {
		d.Logger.Warn("empty series written", zap.String("ticker", ticker), zap.String("path", path))
	}
	d.Logger.Debug("saved", fields...)

	if err := d.Recorder.RecordDownload(evt); err != nil {
		d.Logger.Warn("record download failed", zap.String("ticker", ticker), zap.Error(err))
	}
	return entry, nil
}

func (d *Dumper) finish(job config.Job, res *Result, started time.Time, runErr error) {
	evt := &recorder.RunEvent{
		RunID:      res.RunID,
		Job:        job.Name,
		OutputDir:  job.OutputDir,
		Tickers:    len(job.Tickers),
		Written:    len(res.Entries),
		Status:     recorder.StatusOK,
		StartedAt:  started,
		FinishedAt: d.Now(),
	}
	if runErr != nil {
		evt.Status = recorder.StatusFailed
		evt.Error = runErr.Error()
	}
	if err := d.Recorder.RecordRun(evt); err != nil {
		d.Logger.Warn("record run failed", zap.String("job", job.Name), zap.Error(err))
	}
}
