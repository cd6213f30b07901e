package logger

import (
	"io"
	"log/slog"
)

// Option configures a logger created with New.
type Option func(*options)

// WithDebug lowers the level to Debug.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.level = slog.LevelInfo
		if debug {
			o.level = slog.LevelDebug
		}
	}
}

// WithPretty selects the charmbracelet/log handler for terminal output.
func WithPretty(pretty bool) Option {
	return func(o *options) {
		o.pretty = pretty
	}
}

// WithJSON selects slog's JSON handler. Pretty wins when both are set.
func WithJSON(json bool) Option {
	return func(o *options) {
		o.json = json
	}
}

// WithWriter sets the destination. Defaults to os.Stderr so stdout only
// carries replies.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

// WithComponent tags every record with the emitting component. The pretty
// handler shows it as a prefix, the others as a "component" attribute.
func WithComponent(name string) Option {
	return func(o *options) {
		o.component = name
	}
}
