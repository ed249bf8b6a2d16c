package mapedit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record before it is formatted.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var silent = slog.New(discardHandler{})

// logger is read by project-load goroutines as well as the editor loop.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent)
}

// SetLogger routes mapedit's diagnostics to l. Until it is called nothing
// is logged; nil goes back to that.
//
// Records carry a "map" attribute where one applies. Debug covers frames,
// shader builds and quad uploads; Info covers maps being opened, closed,
// loaded, synced and reloaded; Warn covers out-of-range indices and
// external edits to maps with unsaved changes; Error covers failed loads,
// writes and frames.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
