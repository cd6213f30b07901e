package chatclient

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultPath  = "/chat"
	DefaultParam = "message"
)

// Config describes where the chat endpoint lives and how to talk to it.
type Config struct {
	// Endpoint is the base URL of the chat server, e.g. http://localhost:50505.
	Endpoint string

	// Path is joined onto Endpoint. Defaults to /chat.
	Path string

	// Param is the query parameter that carries the message. Defaults to message.
	Param string

	// Format names the stream dialect (see provider.SupportedProviders).
	// Defaults to openai.
	Format string

	// Timeout bounds a whole request including the streamed body. Zero
	// means no limit.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Param == "" {
		c.Param = DefaultParam
	}
	if c.Format == "" {
		c.Format = "openai"
	}
	return c
}

// chatURL resolves Endpoint and Path to the URL requests are sent to,
// without a query.
func (c Config) chatURL() (*url.URL, error) {
	if c.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	base, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be an http or https URL", c.Endpoint)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}

	return base.JoinPath(c.Path), nil
}
