package app

import "github.com/google/wire"

// ProviderSet lists every provider needed to build an App.
var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideFetcher,
	ProvideSaver,
	ProvideRecorder,
	ProvideDumper,
	ProvideNotifier,
	wire.Struct(new(App), "Config", "Logger", "Recorder", "Dumper", "Notifier"),
)
