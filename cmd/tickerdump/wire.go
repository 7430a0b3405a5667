//go:build wireinject
// +build wireinject

package main

import (
	"TickerDump/internal/app"

	"github.com/google/wire"
)

// InitializeApp builds the App for the given command-line options.
// Caller must invoke the returned cleanup when done.
func InitializeApp(opts app.Options) (*app.App, func(), error) {
	wire.Build(app.ProviderSet)
	return nil, nil, nil
}
