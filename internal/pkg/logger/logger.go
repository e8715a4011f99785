package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development gets a human-readable
// console writer; everything else emits JSON lines with unix timestamps.
func New(appName, environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var l zerolog.Logger
	if strings.EqualFold(environment, "development") {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}

	return l.With().Timestamp().Str("app", appName).Logger()
}
