package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newDiagnostics builds the logger for the diagnostic stream.
//
// Diagnostics never mix with the report: the report goes to stdout, the
// logger writes human-readable lines to stderr. Row-level failures are
// warnings; -v raises the level to debug.
func newDiagnostics(verbose bool) *zap.SugaredLogger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Sugar()
}
