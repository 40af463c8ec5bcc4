package sitemaptree

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LoggerConfig controls the structured logger used for every
// warn-and-continue path the core engine hits (an invalid sub-sitemap URL
// skipped, a gunzip failure falling back to raw bytes, an out-of-range
// priority clamped to default, an unrecognized change frequency). A
// disabled logger is the default so library consumers aren't forced into a
// particular logging backend.
type LoggerConfig struct {
	Level  string // "debug", "info", "warn", "error", or "" to disable
	Format string // "console" or "json" (default)
	Output io.Writer
}

// Logger wraps zerolog.Logger with the small set of calls this module
// needs. The zero value is a disabled logger that discards everything.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger builds a Logger from cfg.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Level == "" {
		return &Logger{logger: zerolog.Nop()}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	return &Logger{
		logger: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

// nopLogger is used wherever a caller hasn't supplied one.
func nopLogger() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) event(level zerolog.Level, msg string, keyvals ...interface{}) {
	if l == nil {
		return
	}
	e := l.logger.WithLevel(level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		e = e.Interface(key, keyvals[i+1])
	}
	e.Msg(msg)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) { l.event(zerolog.DebugLevel, msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...interface{})  { l.event(zerolog.InfoLevel, msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...interface{})  { l.event(zerolog.WarnLevel, msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...interface{}) { l.event(zerolog.ErrorLevel, msg, keyvals...) }
