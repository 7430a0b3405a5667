package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			job         TEXT NOT NULL,
			output_dir  TEXT,
			tickers     INTEGER,
			written     INTEGER,
			status      TEXT,
			error       TEXT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS downloads (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at INTEGER NOT NULL,
			run_id     TEXT NOT NULL,
			job        TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			path       TEXT,
			bars       INTEGER,
			bytes      INTEGER,
			first_date TEXT,
			last_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_run ON downloads(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_ticker ON downloads(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, job, output_dir, tickers, written, status, error, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		evt.RunID, evt.Job, evt.OutputDir, evt.Tickers, evt.Written,
		evt.Status, evt.Error, evt.StartedAt.UnixMilli(), evt.FinishedAt.UnixMilli(),
	)
	return err
}

func (r *SQLiteRecorder) RecordDownload(evt *DownloadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fetched := evt.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	_, err := r.db.Exec(`INSERT INTO downloads
		(fetched_at, run_id, job, ticker, path, bars, bytes, first_date, last_date)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		fetched.UnixMilli(), evt.RunID, evt.Job, evt.Ticker, evt.Path,
		evt.Bars, evt.Bytes, evt.FirstDate, evt.LastDate,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, job, output_dir, tickers, written, status, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunEvent
	for rows.Next() {
		var evt RunEvent
		var started, finished int64
		if err := rows.Scan(&evt.RunID, &evt.Job, &evt.OutputDir, &evt.Tickers, &evt.Written,
			&evt.Status, &evt.Error, &started, &finished); err != nil {
			return nil, err
		}
		evt.StartedAt = time.UnixMilli(started)
		evt.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, evt)
	}
	return runs, rows.Err()
}

// Downloads returns the files written by a run in the order they were written.
func (r *SQLiteRecorder) Downloads(runID string) ([]DownloadEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, job, ticker, path, bars, bytes, first_date, last_date, fetched_at
		FROM downloads WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DownloadEvent
	for rows.Next() {
		var evt DownloadEvent
		var fetched int64
		if err := rows.Scan(&evt.RunID, &evt.Job, &evt.Ticker, &evt.Path, &evt.Bars, &evt.Bytes,
			&evt.FirstDate, &evt.LastDate, &fetched); err != nil {
			return nil, err
		}
		evt.FetchedAt = time.UnixMilli(fetched)
		out = append(out, evt)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
