package config

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil || c.Level == "" {
		return fmt.Errorf("invalid log level: %q", c.Level)
	}
	switch c.Format {
	case "console", "json":
		return nil
	}
	return fmt.Errorf("invalid log format: %q (valid: console, json)", c.Format)
}

// Logger builds a zerolog logger writing to w.
func (c LoggingConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
