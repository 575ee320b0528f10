package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New creates a named hclog.Logger. The level argument is overridden by the
// PAGESENTRY_LOG_LEVEL environment variable when set.
func New(name, level string, out io.Writer) hclog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if env := os.Getenv("PAGESENTRY_LOG_LEVEL"); env != "" {
		level = env
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		Level:       parseLevel(level),
		Output:      out,
		DisableTime: false,
	})
}

// parseLevel converts a string level to hclog.Level, defaulting to Info.
func parseLevel(s string) hclog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO", "":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
