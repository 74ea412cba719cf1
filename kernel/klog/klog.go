// Package klog wraps go.uber.org/zap for the kernel's ambient logging
// concern. It exists so the kernel core never calls fmt.Printf directly:
// the teacher's diagnostic byte emissions ('T', 'R', 'E', 'K', digit per
// switch) are tracing artifacts, not contract (spec.md §7), and are
// reproduced here only as structured debug log lines, gated by level.
// The one exception is the 'R' the reset handler writes to the UART.
package klog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin handle over *zap.Logger. A nil *Logger disables
// logging entirely: every method is nil-safe, so kernel packages can hold
// an always-valid *Logger field without a "logging enabled" branch at
// every call site.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger at the given level, writing structured console
// output. level should be one of "debug", "info", "warn", "error".
func New(level string) (*Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Noop returns a Logger that discards everything, for tests that don't
// want log output but do want a non-nil Logger to pass around.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Warn(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.z == nil {
		return nil
	}
	return l.z.Sync()
}
