package swptlog

import "context"

type contextKey string

const loggerContextKey contextKey = "swptlog.logger"

// ContextWithLogger returns a context carrying the given logger.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts the Logger previously attached with
// ContextWithLogger, falling back to a no-op logger so callers never need
// a nil check.
//
//nolint:ireturn
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerContextKey).(Logger); ok && logger != nil {
		return logger
	}

	return &NoneLogger{}
}
