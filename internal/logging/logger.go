// Package logging constructs the zap logger used throughout this module,
// simplified from rupor-github-fb2cng/config/logger.go's Prepare for
// library use: no file destination or panic capture, just a development
// console encoder gated by level.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger at the given level ("debug", "info", "warn",
// "error"; anything else is treated as "info"). Errors and above go to
// stderr, everything else to stdout, mirroring the console split the
// teacher's logger config performs between its high- and low-priority
// cores.
func New(level string) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	threshold := parseLevel(level)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= threshold && lvl < zapcore.ErrorLevel
	})

	stdoutCore := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lowPriority)
	stderrCore := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)

	return zap.New(zapcore.NewTee(stdoutCore, stderrCore)).Named("forme")
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want console output.
func Nop() *zap.Logger {
	return zap.NewNop()
}
