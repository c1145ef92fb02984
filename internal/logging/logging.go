package logging

import (
	"log"
	"log/slog"
	"os"
)

// Setup installs a stderr text handler at level as the default logger and
// returns it. Summary output goes to stdout; diagnostics stay on stderr so
// the tools can be piped.
func Setup(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// StandardFatal logs through the standard logger and exits non-zero. Used
// for startup failures before structured logging is configured.
func StandardFatal(msg string, err error) {
	log.SetOutput(os.Stderr)
	log.Fatalf("%s: %v", msg, err)
}
