package logger

import (
	"context"
	"log/slog"
)

// nopeHandler is a slog.Handler that discards all logs.
type nopeHandler struct{}

func (n nopeHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (n nopeHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (n nopeHandler) WithAttrs(_ []slog.Attr) slog.Handler          { return n }
func (n nopeHandler) WithGroup(_ string) slog.Handler               { return n }

// NewNope returns a slog.Logger that discards all logs.
// Constructors use it when no logger was supplied.
func NewNope() *slog.Logger {
	return slog.New(nopeHandler{})
}
