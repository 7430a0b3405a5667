package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TickerDump/internal/config"
	"TickerDump/internal/dumper"
	"TickerDump/internal/notifier"
)

// Runner runs a list of jobs. *dumper.Dumper satisfies it.
type Runner interface {
	RunAll(jobs []config.Job) ([]*dumper.Result, error)
}

// Scheduler reruns jobs on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Jobs   []config.Job
	Logger *zap.Logger

	// Notifier receives a report after each refresh. Successful refreshes
	// are only reported when NotifyOnSuccess is set.
	Notifier        notifier.Notifier
	NotifyOnSuccess bool
	Now             func() time.Time

	running  sync.Mutex     // held for the duration of a refresh
	inflight sync.WaitGroup // refreshes started outside cron
}

// NewScheduler creates a Scheduler. Triggers that fire while a refresh is
// still running are skipped.
func NewScheduler(runner Runner, jobs []config.Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Runner:   runner,
		Jobs:     jobs,
		Logger:   logger,
		Notifier: notifier.NoopNotifier{},
		Now:      time.Now,
	}
}

// Register adds the refresh task under spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) (cron.EntryID, error) {
	id, err := s.Cron.AddFunc(spec, s.refresh)
	if err != nil {
		return 0, fmt.Errorf("register refresh task: %w", err)
	}
	return id, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("jobs", len(s.Jobs)))
}

// Stop stops the cron scheduler and waits for a running refresh to finish,
// including one started by Trigger or RunNow.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.inflight.Wait()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the refresh task immediately and returns when it is done.
// It is skipped if a refresh is already running.
func (s *Scheduler) RunNow() {
	s.inflight.Add(1)
	defer s.inflight.Done()
	s.refresh()
}

// Trigger starts a refresh in the background. Stop waits for it.
func (s *Scheduler) Trigger() {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.refresh()
	}()
}

func (s *Scheduler) refresh() {
	if !s.running.TryLock() {
		s.Logger.Warn("refresh already running, skipping")
		return
	}
	defer s.running.Unlock()

	s.Logger.Info("running scheduled refresh")
	started := s.Now()
	results, err := s.Runner.RunAll(s.Jobs)
	defer s.report(results, err, s.Now().Sub(started))
	written := 0
	for _, r := range results {
		if r != nil {
			written += len(r.Entries)
		}
	}
	if err != nil {
		s.Logger.Error("scheduled refresh failed", zap.Int("written", written), zap.Error(err))
		return
	}
	s.Logger.Info("scheduled refresh done", zap.Int("written", written))
}

func (s *Scheduler) report(results []*dumper.Result, runErr error, took time.Duration) {
	if runErr == nil && !s.NotifyOnSuccess {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.Notifier.Notify(ctx, notifier.FormatRunReport(results, runErr, took)); err != nil {
		s.Logger.Warn("send run report failed", zap.Error(err))
	}
}
