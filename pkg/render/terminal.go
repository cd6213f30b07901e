package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	// StyleAuto picks a dark or light style from the terminal background.
	StyleAuto = "auto"

	defaultWidth = 80
)

type terminalConfig struct {
	style string
	width int
}

// TerminalOption configures a terminal renderer.
type TerminalOption func(*terminalConfig)

// WithStyle sets the glamour style: a standard style name ("dark", "light",
// "notty", ...), a path to a JSON style file, or StyleAuto.
func WithStyle(style string) TerminalOption {
	return func(c *terminalConfig) {
		if style != "" {
			c.style = style
		}
	}
}

// WithWordWrap sets the wrap column. Zero or negative keeps the default.
func WithWordWrap(width int) TerminalOption {
	return func(c *terminalConfig) {
		if width > 0 {
			c.width = width
		}
	}
}

// terminalRenderer guards a glamour TermRenderer, which keeps per-render
// state and must not be shared between goroutines.
type terminalRenderer struct {
	mu sync.Mutex
	tr *glamour.TermRenderer
}

// NewTerminal returns a Renderer producing ANSI-styled text.
func NewTerminal(opts ...TerminalOption) (Renderer, error) {
	cfg := terminalConfig{style: StyleAuto, width: defaultWidth}
	for _, opt := range opts {
		opt(&cfg)
	}

	styleOpt := glamour.WithStylePath(cfg.style)
	if cfg.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}

	tr, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(cfg.width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}

	return &terminalRenderer{tr: tr}, nil
}

func (t *terminalRenderer) Render(markdown string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.tr.Render(markdown)
}
