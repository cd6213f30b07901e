package chatclient

import (
	"log/slog"
	"net/http"

	"github.com/papercomputeco/streamchat/pkg/llm/provider"
	"github.com/papercomputeco/streamchat/pkg/render"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Config.Timeout is ignored when a
// client is supplied.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRenderer sets how the accumulator is rendered. Defaults to HTML.
func WithRenderer(r render.Renderer) Option {
	return func(c *Client) {
		c.renderer = r
	}
}

// WithProvider overrides the dialect chosen by Config.Format.
func WithProvider(p provider.Provider) Option {
	return func(c *Client) {
		c.provider = p
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}
