// Package logging wraps github.com/charmbracelet/log. Library packages
// never import this directly -- pipeline.Options carries a *log.Logger so the
// CLI front end is the only place that decides the writer/level, the
// same separation direwolf's text_color_set/dw_printf indirection
// was reaching for with a global, here done with dependency injection
// instead of package globals.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New constructs a logger writing to os.Stderr at the given level
// ("debug", "info", "warn", "error"); an unrecognized level falls back
// to info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
