package compositor

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/compositor/source"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, which keeps per-tick debug logging free when disabled.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with ticks on another goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for the compositor, its sources and the
// gg drawing library underneath. By default nothing is logged.
//
// Pass nil to disable logging again.
//
// Log levels used:
//   - [slog.LevelDebug]: per-tick diagnostics (skipped ticks, step failures)
//   - [slog.LevelInfo]: lifecycle transitions (start, stop, device acquired)
//   - [slog.LevelWarn]: resource release failures
//
// Example:
//
//	compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	propagateLogger(l)
}

// propagateLogger hands the logger to the packages that keep their own
// logger to avoid importing this one.
func propagateLogger(l *slog.Logger) {
	gg.SetLogger(l)
	source.SetLogger(l)
}

// Logger returns the current logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
