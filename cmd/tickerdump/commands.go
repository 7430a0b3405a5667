package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"TickerDump/internal/app"
	"TickerDump/internal/recorder"
	"TickerDump/internal/scheduler"
)

func newRootCmd() *cobra.Command {
	opts := &app.Options{}
	root := &cobra.Command{
		Use:           "tickerdump",
		Short:         "Download two years of daily prices per ticker into JSON files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $CONFIG_PATH or configs/config.yaml)")
	root.PersistentFlags().StringVar(&opts.Format, "format", "", "output format: json, records, csv, parquet")
	root.PersistentFlags().BoolVar(&opts.DryRun, "dry-run", false, "use generated prices instead of calling the provider")

	root.AddCommand(newRunCmd(opts), newJobsCmd(opts), newScheduleCmd(opts), newHistoryCmd(opts))
	return root
}

func newRunCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [job...]",
		Short: "Fetch every ticker of the given jobs (default: all) and write one file each",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := InitializeApp(*opts)
			if err != nil {
				return err
			}
			defer cleanup()

			jobs, err := a.Config.SelectJobs(args)
			if err != nil {
				return err
			}
			a.Dumper.Out = cmd.OutOrStdout()
			if _, err := a.Dumper.RunAll(jobs); err != nil {
				a.Logger.Error("run failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func newJobsCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List configured jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := InitializeApp(*opts)
			if err != nil {
				return err
			}
			defer cleanup()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "JOB\tOUTPUT DIR\tTICKERS")
			for _, j := range a.Config.Jobs {
				fmt.Fprintf(w, "%s\t%s\t%d\n", j.Name, j.OutputDir, len(j.Tickers))
			}
			return w.Flush()
		},
	}
}

func newScheduleCmd(opts *app.Options) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "schedule [job...]",
		Short: "Rerun jobs on the configured cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := InitializeApp(*opts)
			if err != nil {
				return err
			}
			defer cleanup()

			jobs, err := a.Config.SelectJobs(args)
			if err != nil {
				return err
			}
			a.Dumper.Out = cmd.OutOrStdout()
			sched := scheduler.NewScheduler(a.Dumper, jobs, a.Logger)
			sched.Notifier = a.Notifier
			sched.NotifyOnSuccess = a.Config.Telegram.OnSuccess
			if _, err := sched.Register(a.Config.Schedule.Cron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
			a.Logger.Info("waiting for schedule", zap.String("cron", a.Config.Schedule.Cron))

			if runNow {
				sched.Trigger()
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			a.Logger.Info("shutdown signal received, stopping", zap.String("signal", sig.String()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run the jobs once immediately")
	return cmd
}

func newHistoryCmd(opts *app.Options) *cobra.Command {
	var (
		limit int
		runID string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs, or the files of one run, from the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := InitializeApp(*opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if a.Config.Database.SQLitePath == "" {
				return fmt.Errorf("no database configured (set database.sqlite_path or SQLITE_PATH)")
			}
			if _, ok := a.Recorder.(*recorder.SQLiteRecorder); !ok {
				return fmt.Errorf("history database %s could not be opened", a.Config.Database.SQLitePath)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if runID != "" {
				downloads, err := a.Recorder.Downloads(runID)
				if err != nil {
					return err
				}
				if len(downloads) == 0 {
					return fmt.Errorf("no files recorded for run %s", runID)
				}
				fmt.Fprintln(w, "TICKER\tPATH\tBARS\tSIZE\tFROM\tTO\tFETCHED")
				for _, d := range downloads {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
						d.Ticker, d.Path, d.Bars, humanize.Bytes(uint64(d.Bytes)),
						d.FirstDate, d.LastDate, d.FetchedAt.Format(time.DateTime))
				}
				return w.Flush()
			}

			runs, err := a.Recorder.RecentRuns(limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "STARTED\tRUN\tJOB\tSTATUS\tWRITTEN\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%s\n",
					r.StartedAt.Format(time.DateTime), r.RunID, r.Job, r.Status, r.Written, r.Tickers, r.Error)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "list the files written by this run ID")
	return cmd
}
