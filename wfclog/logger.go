package wfclog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level names a zerolog severity without forcing callers to import
// zerolog directly.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects zerolog's console writer (human-readable) over its
// default compact JSON encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer // defaults to os.Stdout
}

// Logger is a thin zerolog wrapper implementing propagator.Logger (Event)
// structurally, so the propagator package never imports zerolog itself.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == FormatText {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	z := zerolog.New(out).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		z = z.Level(zerolog.DebugLevel)
	case LevelWarn:
		z = z.Level(zerolog.WarnLevel)
	case LevelError:
		z = z.Level(zerolog.ErrorLevel)
	default:
		z = z.Level(zerolog.InfoLevel)
	}
	return &Logger{z: z}
}

// Event logs name at info level with fields attached, satisfying
// propagator.Logger.
func (l *Logger) Event(name string, fields map[string]interface{}) {
	e := l.z.Info()
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(name)
}
