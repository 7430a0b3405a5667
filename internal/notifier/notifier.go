package notifier

import "context"

// Notifier delivers a run report somewhere a human will see it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// NoopNotifier drops every report. Used when Telegram is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string) error { return nil }
