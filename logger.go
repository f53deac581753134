package zcli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewConsoleLogger constructs a zap logger configured for human-readable
// console output on stderr, to be given to WithLogger. Debug logs trace
// the execution of each run.
func NewConsoleLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""

	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	//nolint:wrapcheck
	return config.Build()
}
