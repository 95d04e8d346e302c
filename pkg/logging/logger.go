package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	// SymbolKey is the key used to store the book's symbol in context.
	SymbolKey contextKey = "symbol"
)

// Config defines logging configuration.
type Config struct {
	// Level is the logging level (debug, info, warn, error).
	Level string
	// Pretty determines if logs should be formatted for human readability.
	Pretty bool
	// Output is where logs are written (defaults to os.Stdout).
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Pretty: false,
		Output: os.Stdout,
	}
}

// Setup configures global logging based on the provided config.
func Setup(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// FromContext returns a logger annotated with the book's symbol, if one has
// been attached to ctx via context.WithValue(ctx, SymbolKey, ...).
func FromContext(ctx context.Context) zerolog.Logger {
	if symbol, ok := ctx.Value(SymbolKey).(string); ok {
		return log.With().Str("symbol", symbol).Logger()
	}
	return log.Logger
}
