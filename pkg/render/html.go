package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var commonMark = goldmark.New()

// MarkdownToHTML converts CommonMark text to HTML with no extensions. Raw
// HTML in the input is omitted. It is a pure function: the same text always
// produces the same output.
func MarkdownToHTML(text string) string {
	var buf bytes.Buffer
	if err := commonMark.Convert([]byte(text), &buf); err != nil {
		// goldmark only fails on writer errors, which a bytes.Buffer never returns
		return ""
	}
	return buf.String()
}

// HTMLOption configures an HTML renderer.
type HTMLOption func(*htmlRenderer)

// WithGFM enables the GitHub Flavored Markdown extensions.
func WithGFM() HTMLOption {
	return func(h *htmlRenderer) {
		h.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}
}

// WithSanitize filters the produced HTML through bluemonday's UGC policy.
func WithSanitize() HTMLOption {
	return func(h *htmlRenderer) {
		h.policy = bluemonday.UGCPolicy()
	}
}

type htmlRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewHTML returns a Renderer producing HTML fragments. With no options it
// matches MarkdownToHTML exactly.
func NewHTML(opts ...HTMLOption) Renderer {
	h := &htmlRenderer{md: commonMark}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *htmlRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}

	if h.policy != nil {
		return h.policy.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}
