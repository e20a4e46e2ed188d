package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. LOG_FORMAT=json writes JSON lines;
// anything else uses the human-readable console writer.
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if format == "json" {
		w = os.Stderr
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Logger builds the logger described by c.
func (c *Config) Logger() zerolog.Logger {
	return NewLogger(c.LogLevel, c.LogFormat)
}
