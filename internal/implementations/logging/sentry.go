package logging

import (
	"context"
	"remindbot/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
)

// SentryLogger forwards error records to Sentry in addition to the wrapped logger.
type SentryLogger struct {
	logging.Logger
	hub *sentry.Hub
}

func WithSentry(inner logging.Logger, hub *sentry.Hub) *SentryLogger {
	return &SentryLogger{Logger: inner, hub: hub}
}

func (l *SentryLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.Logger.Error(ctx, msg, entries...)

	hub := l.hub
	if ctxHub := sentry.GetHubFromContext(ctx); ctxHub != nil {
		hub = ctxHub
	}
	hub.WithScope(func(scope *sentry.Scope) {
		var err error
		for _, entry := range entries {
			if e, ok := entry.Value.(error); ok && err == nil {
				err = e
				continue
			}
			scope.SetExtra(entry.Key, entry.Value)
		}
		if err == nil {
			hub.CaptureMessage(msg)
			return
		}
		scope.SetExtra("message", msg)
		hub.CaptureException(err)
	})
}
