package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger with consistent JSON output. In release mode the
// level is info; otherwise debug with a human-readable encoder.
func New(ginMode string) (*zap.Logger, error) {
	if ginMode == "release" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		return cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return zap.NewDevelopment()
}
