package env

import (
	"log/slog"
	"os"
)

const DebugVar = "VUEBUILD_DEBUG"

// DetectLogLevel is Debug when verbose is set or VUEBUILD_DEBUG=1, Warn
// otherwise.
func DetectLogLevel(verbose bool) slog.Level {
	if verbose || os.Getenv(DebugVar) == "1" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewLogger builds the text logger the CLI installs on stderr.
func NewLogger(verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: DetectLogLevel(verbose),
	}))
}
