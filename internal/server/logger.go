package server

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by the server. The server is silent until
// SetLogger is called; passing nil silences it again.
//
// Log levels used:
//   - [slog.LevelDebug]: every request and tool call with its duration
//   - [slog.LevelInfo]: image loads and server lifecycle
//   - [slog.LevelWarn]: malformed input lines and failed tool calls
//   - [slog.LevelError]: failures writing responses
//
// The server writes the protocol to stdout, so handlers must never log
// there.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by the server.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
