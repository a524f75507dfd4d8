package logger

import "context"

type ContextKey string

const LoggerCtxKey ContextKey = "logger"

// ContextWithLogger returns a copy of ctx carrying log.
func ContextWithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, log)
}

// FromContext returns the logger stored in ctx, or the default logger when
// none (or a nil one) is present.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
			return l
		}
	}
	return defaultLogger
}
