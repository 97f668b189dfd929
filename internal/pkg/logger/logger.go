// Package logger implements the ports.Logger interface over zerolog.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// ZeroLogger routes structured logs to stderr. Verbose enables debug level;
// otherwise only warnings and errors surface, keeping the terminal quiet.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger.
func New(verbose bool) *ZeroLogger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return &ZeroLogger{
		log: zerolog.New(writer).Level(level).With().Timestamp().Logger(),
	}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}
