package diagnostics

import (
	"context"
	"log/slog"
)

// Logger wraps a *slog.Logger so a nil logger costs nothing: every call
// site checks Enabled before building any attrs.
type Logger struct {
	L     *slog.Logger
	Trace bool
}

// Enabled reports whether a log call at level would actually be
// recorded, avoiding the cost of constructing attrs for a nil logger.
func (lg Logger) Enabled(level slog.Level) bool {
	return lg.L != nil && lg.L.Enabled(context.Background(), level)
}

// Log emits a log record at level if enabled.
func (lg Logger) Log(level slog.Level, msg string, args ...any) {
	if !lg.Enabled(level) {
		return
	}
	lg.L.Log(context.Background(), level, msg, args...)
}

// TraceEnabled reports whether trace-level logging is requested. Trace is
// a verbosity tier below Debug, gated independently so -vv can be wired
// without inventing a five-level slog hierarchy.
func (lg Logger) TraceEnabled() bool {
	return lg.Trace && lg.Enabled(slog.LevelDebug)
}

// TraceLog emits a debug-level record only when TraceEnabled.
func (lg Logger) TraceLog(msg string, args ...any) {
	if !lg.TraceEnabled() {
		return
	}
	lg.L.Log(context.Background(), slog.LevelDebug, msg, args...)
}
