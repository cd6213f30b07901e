// Package render turns the accumulated markdown of an assistant reply into
// its display form: HTML for the browser page, ANSI for terminals, or the
// raw text.
package render

import "fmt"

// Output modes accepted by New.
const (
	ModeHTML     = "html"
	ModeTerminal = "terminal"
	ModePlain    = "plain"
)

// Renderer converts a complete markdown document into display form. Callers
// pass the full accumulated text on every call, never a delta.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Options carries the settings shared by the concrete renderers.
type Options struct {
	// Style is a glamour style name or JSON path, or "auto".
	Style string

	// Width is the terminal word wrap column.
	Width int

	// GFM enables tables, strikethrough and autolinks in HTML output.
	GFM bool

	// Sanitize runs HTML output through a UGC policy.
	Sanitize bool
}

// New resolves an output mode to a Renderer.
func New(mode string, opts Options) (Renderer, error) {
	switch mode {
	case ModeHTML:
		var htmlOpts []HTMLOption
		if opts.GFM {
			htmlOpts = append(htmlOpts, WithGFM())
		}
		if opts.Sanitize {
			htmlOpts = append(htmlOpts, WithSanitize())
		}
		return NewHTML(htmlOpts...), nil
	case ModeTerminal:
		return NewTerminal(WithStyle(opts.Style), WithWordWrap(opts.Width))
	case ModePlain:
		return NewPlain(), nil
	default:
		return nil, fmt.Errorf("unknown output mode: %q (supported: %s, %s, %s)", mode, ModeHTML, ModeTerminal, ModePlain)
	}
}

type plain struct{}

// NewPlain returns a Renderer that passes markdown through untouched.
func NewPlain() Renderer {
	return plain{}
}

func (plain) Render(markdown string) (string, error) {
	return markdown, nil
}
