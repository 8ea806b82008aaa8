package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the process logger
type Config struct {
	Level   string    // optional level ("debug", "info", ...), falls back to RHYTHM_LOG_LEVEL
	Output  io.Writer // optional writer, defaults to io.Discard since the terminal owns stdout
	Service string    // service name attached to every entry
}

var (
	once sync.Once
	base = zerolog.Nop()
)

// Configure initialises the process logger exactly once
// Later calls are ignored so packages can log safely before main finishes wiring
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		} else if env := os.Getenv("RHYTHM_LOG_LEVEL"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
		zerolog.TimeFieldFormat = time.RFC3339Nano

		writer := cfg.Output
		if writer == nil {
			writer = io.Discard
		}

		service := cfg.Service
		if service == "" {
			service = "rhythm-detective"
		}

		base = zerolog.New(writer).Level(level).With().
			Timestamp().
			Str("service", service).
			Logger()
	})
}

// Base returns the configured logger, or a no-op logger before Configure
func Base() zerolog.Logger {
	return base
}

// WithComponent returns a child logger annotated with the component name
func WithComponent(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// OpenFile opens (appending) the log file used as Config.Output
// An empty path yields io.Discard and a no-op closer
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
