// Package applog configures the process-wide zerolog logger, grounded on
// Omkar0612-nexus-ai's internal/cli/start.go (ConsoleWriter over stderr,
// level selected from a string at startup).
package applog

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global zerolog level and output writer. level is one of
// "debug", "info", "warn", "error"; anything else falls back to info.
func Init(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the configured global logger.
func Logger() zerolog.Logger {
	return log.Logger
}
