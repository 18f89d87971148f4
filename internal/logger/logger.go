// Package logger wraps zap construction so main can build one structured
// logger and pass it explicitly to every component.
package logger

import (
	"go.uber.org/zap"
)

// Logger holds the application's zap logger.
type Logger struct {
	// Log is the underlying zap logger. No-op until Init succeeds.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error").
func (l *Logger) Init(level string) error {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
