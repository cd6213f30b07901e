// Package logger builds the *slog.Logger instances used across streamchat.
// Library packages accept a *slog.Logger; commands construct one here.
package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type options struct {
	level     slog.Level
	pretty    bool
	json      bool
	component string
	w         io.Writer
}

// New creates a *slog.Logger. Without options it writes slog text records at
// Info level to stderr.
func New(opts ...Option) *slog.Logger {
	o := &options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}
	if o.w == nil {
		o.w = os.Stderr
	}

	l := slog.New(o.handler())
	if o.component != "" && !o.pretty {
		l = l.With("component", o.component)
	}
	return l
}

func (o *options) handler() slog.Handler {
	hopts := &slog.HandlerOptions{Level: o.level}

	switch {
	case o.pretty:
		return charmlog.NewWithOptions(o.w, charmlog.Options{
			Level:           charmlog.Level(o.level),
			Prefix:          o.component,
			ReportTimestamp: true,
		})
	case o.json:
		return slog.NewJSONHandler(o.w, hopts)
	default:
		return slog.NewTextHandler(o.w, hopts)
	}
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
