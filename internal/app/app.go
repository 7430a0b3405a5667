package app

import (
	"go.uber.org/zap"

	"TickerDump/internal/config"
	"TickerDump/internal/dumper"
	"TickerDump/internal/notifier"
	"TickerDump/internal/recorder"
)

// Options are command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	Format     string // overrides output.format when set
	DryRun     bool   // use the mock fetcher instead of Yahoo
}

// App holds application dependencies built by Wire.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Recorder recorder.Recorder
	Dumper   *dumper.Dumper
	Notifier notifier.Notifier
}
