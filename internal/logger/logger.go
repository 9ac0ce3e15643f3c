// Package logger provides the shared application logger. Diagnostics go to
// stderr so stdout stays clean for command output (previews, tables).
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

func init() {
	Initialize(false)
}

// Initialize (re)configures the logger. Debug enables debug-level output.
func Initialize(debug bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	log = base.Sugar()
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) { log.Debugf(format, args...) }

// Infof logs at info level.
func Infof(format string, args ...any) { log.Infof(format, args...) }

// Warnf logs at warning level.
func Warnf(format string, args ...any) { log.Warnf(format, args...) }

// Errorf logs at error level.
func Errorf(format string, args ...any) { log.Errorf(format, args...) }

// Fatalf logs at fatal level and exits.
func Fatalf(format string, args ...any) { log.Fatalf(format, args...) }
