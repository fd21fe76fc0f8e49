package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. format "json" writes one
// JSON object per line, anything else a human readable console format.
func InitLogger(level, format string) {
	InitLoggerTo(os.Stdout, level, format)
}

func InitLoggerTo(out io.Writer, level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	log.Debug().Str("level", lvl.String()).Str("format", format).Msg("logger initialized")
}
