// Package logging builds the structured loggers shared by the service, the
// automation bridge and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config describes a logger.
type Config struct {
	Level     string
	Prefix    string
	Timestamp bool
	Output    io.Writer
}

// New returns a logger writing to cfg.Output (stderr by default). An empty
// level means info.
func New(cfg Config) (*log.Logger, error) {
	level := log.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          cfg.Prefix,
		ReportTimestamp: cfg.Timestamp,
		TimeFormat:      time.Kitchen,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
