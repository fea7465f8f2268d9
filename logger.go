package simplecache

import (
	"context"
	"log/slog"
	"os"
)

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around your logging
// stack (see log/zap, log/logrus, log/slog) or leave nil for the default.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// testEnvMarker suppresses the default debug logger inside automated test
// runs, where the chatter would pollute golden output.
const testEnvMarker = "TESTTMP"

func defaultLogger() Logger {
	if os.Getenv(testEnvMarker) != "" {
		return NopLogger{}
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return stdLogger{l: slog.New(h)}
}

type stdLogger struct{ l *slog.Logger }

func (s stdLogger) Debug(msg string, f Fields) { s.logAt(slog.LevelDebug, msg, f) }
func (s stdLogger) Info(msg string, f Fields)  { s.logAt(slog.LevelInfo, msg, f) }
func (s stdLogger) Warn(msg string, f Fields)  { s.logAt(slog.LevelWarn, msg, f) }
func (s stdLogger) Error(msg string, f Fields) { s.logAt(slog.LevelError, msg, f) }

func (s stdLogger) logAt(lvl slog.Level, msg string, f Fields) {
	attrs := make([]slog.Attr, 0, len(f))
	for k, v := range f {
		attrs = append(attrs, slog.Any(k, v))
	}
	s.l.LogAttrs(context.Background(), lvl, msg, attrs...)
}
