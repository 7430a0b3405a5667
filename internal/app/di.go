package app

import (
	"go.uber.org/zap"

	"TickerDump/internal/collector"
	"TickerDump/internal/config"
	"TickerDump/internal/dumper"
	"TickerDump/internal/logging"
	"TickerDump/internal/notifier"
	"TickerDump/internal/recorder"
	"TickerDump/internal/saver"
)

// ProvideConfig loads and validates config, then applies Options (for Wire).
func ProvideConfig(opts Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideLogger builds the zap logger from config (for Wire).
func ProvideLogger(cfg *config.Config) (*zap.Logger, func()) {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	return logger, func() { _ = logger.Sync() }
}

// ProvideFetcher returns the Yahoo fetcher, or the mock fetcher for dry runs (for Wire).
func ProvideFetcher(cfg *config.Config, opts Options, logger *zap.Logger) collector.Fetcher {
	if opts.DryRun {
		logger.Info("dry run: using mock fetcher")
		return &collector.MockFetcher{}
	}
	return collector.NewYahooFetcher(cfg.Provider.BaseURL, cfg.Proxy, cfg.Provider.Timeout, cfg.AdjustPrices(), logger)
}

// ProvideSaver creates the Saver for output.format (for Wire).
func ProvideSaver(cfg *config.Config) (saver.Saver, error) {
	return saver.New(cfg.Output.Format)
}

// ProvideRecorder opens the SQLite recorder when a path is configured and
// falls back to the no-op recorder otherwise (for Wire).
func ProvideRecorder(cfg *config.Config, logger *zap.Logger) (recorder.Recorder, func()) {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder(), func() {}
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		return recorder.NewNoopRecorder(), func() {}
	}
	return sr, func() {
		if err := sr.Close(); err != nil {
			logger.Warn("close sqlite recorder", zap.Error(err))
		}
	}
}

// ProvideDumper wires the fetch-and-dump loop (for Wire).
func ProvideDumper(cfg *config.Config, f collector.Fetcher, s saver.Saver, rec recorder.Recorder, logger *zap.Logger) *dumper.Dumper {
	return dumper.New(f, s, rec, logger, cfg.Provider.Period, cfg.Provider.Interval)
}

// ProvideNotifier returns the Telegram notifier when a bot is configured (for Wire).
func ProvideNotifier(cfg *config.Config, logger *zap.Logger) notifier.Notifier {
	if !cfg.NotifyEnabled() {
		return notifier.NoopNotifier{}
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
}
