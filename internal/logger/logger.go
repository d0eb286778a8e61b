package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Output is JSON on stderr unless ENV is development
// (the default when unset, as in config.Config), in which case the console writer is used.
func New() zerolog.Logger {
	// The level field is named "severity" so log collectors parse it without mapping.
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	env := environment()
	if env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(levelFor(os.Getenv("LOG_LEVEL"), env))
}

func levelFor(raw, env string) zerolog.Level {
	if raw != "" {
		if lvl, err := zerolog.ParseLevel(raw); err == nil {
			return lvl
		}
	}
	if env == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// environment mirrors the ENV default of config.Config.
func environment() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}
