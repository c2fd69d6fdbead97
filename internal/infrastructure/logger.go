package infrastructure

import (
	"os"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger so the rest of the module depends on this
// package rather than on zerolog directly. It satisfies the duck-typed
// Logger/LogEvent interfaces pkg/queue declares to avoid importing this
// package back.
type Logger struct {
	zerolog.Logger
}

func New(cfg config.LoggingConfig) Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer = os.Stdout

	var base zerolog.Logger
	if cfg.Format == "console" {
		base = zerolog.New(zerolog.ConsoleWriter{Out: writer}).Level(level).With().Timestamp().Logger()
	} else {
		base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	}

	return Logger{Logger: base}
}
