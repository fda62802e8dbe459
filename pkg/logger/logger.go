// Package logger wraps zerolog behind the small structured-logging
// facade shared by every component.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wplohrmann/sumo/pkg/config"
)

// Logger is a leveled, structured logger. The zero value is not
// usable; construct one with New.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg. LOG_FORMAT selects console or JSON
// output and LOG_LEVEL sets the minimum level, falling back to info
// when the value is empty or unknown.
func New(cfg *config.Config) *Logger {
	z := zerolog.New(writerFor(cfg.LogFormat)).
		Level(level(cfg.LogLevel)).
		With().
		Timestamp().
		Str("env", cfg.Env).
		Logger()
	return &Logger{z: z}
}

func writerFor(format string) io.Writer {
	switch format {
	case "console", "pretty":
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	default:
		return os.Stdout
	}
}

func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return zerolog.InfoLevel
	case "warning":
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Debug, Info, Warn and Error emit a message at the matching level.
// Fatal additionally exits the process.

func (l *Logger) Debug(msg string) { l.z.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.z.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.z.Error().Msg(msg) }
func (l *Logger) Fatal(msg string) { l.z.Fatal().Msg(msg) }

// The f variants format the message with fmt.Sprintf semantics.

func (l *Logger) Debugf(format string, args ...interface{}) { l.z.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.z.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.z.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.z.Error().Msgf(format, args...) }
func (l *Logger) Fatalf(format string, args ...interface{}) { l.z.Fatal().Msgf(format, args...) }

// WithField returns a child logger that carries key=value on every
// entry it emits.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger()}
}

// WithFields returns a child logger carrying all given fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.z.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{z: ctx.Logger()}
}

// WithError returns a child logger carrying err under the error key.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{z: l.z.With().Err(err).Logger()}
}
