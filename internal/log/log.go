// Package log holds the process-wide zap logger.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// Init configures console logging. Verbose enables debug-level output.
func Init(verbose bool) {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	Logger, _ = cfg.Build()
}

// S returns the sugared logger for printf-style call sites.
func S() *zap.SugaredLogger {
	return Logger.Sugar()
}
