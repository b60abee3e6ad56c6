// Package logging builds the zerolog logger used by lantern.
package logging

import (
	"io"
	"time"

	"github.com/born-ml/lantern/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to out as configured by cfg.
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if cfg.Format != config.FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "lantern").Logger(), nil
}
