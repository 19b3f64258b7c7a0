package logging

import (
	"context"
	"log/slog"
)

type ctxLoggerKey struct{}

// With binds a scoped logger to the context. The HTTP middleware uses this to
// attach the request ID to every line a trigger produces.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the context-scoped logger, falling back to the process default
// outside of a request (CLI commands, cron jobs).
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
