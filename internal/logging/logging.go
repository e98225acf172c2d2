// Package logging provides the structured logger used across lcicore
// packages. It wraps zap so that call sites depend on a small interface
// rather than a concrete logging library.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the minimal surface lcicore packages use for diagnostics.
// *zap.SugaredLogger satisfies this directly.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New builds a production zap logger at the given level ("debug", "info",
// "warn", "error") and returns its sugared form.
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return base.Sugar(), nil
}

// Nop returns a Logger that discards everything. Used as a safe default
// and in tests where log output is irrelevant.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
