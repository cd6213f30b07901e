package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent streamchat configuration stored as
// config.toml in the .streamchat/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Render  RenderConfig `toml:"render"`
	Log     LogConfig    `toml:"log"`
}

// ClientConfig describes the chat endpoint. Endpoint is a full URL
// (scheme + host + port); Path is joined onto it.
type ClientConfig struct {
	Endpoint string `toml:"endpoint,omitempty"`
	Path     string `toml:"path,omitempty"`
	Param    string `toml:"param,omitempty"`
	Format   string `toml:"format,omitempty"`

	// Timeout is a Go duration string ("90s", "5m"). Empty or "0s" means
	// no limit.
	Timeout string `toml:"timeout,omitempty"`
}

// TimeoutDuration parses Timeout. An empty value is zero.
func (c ClientConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid client.timeout: %w", err)
	}
	return d, nil
}

// RenderConfig controls how replies are displayed.
type RenderConfig struct {
	// Output is "auto", "html", "terminal" or "plain".
	Output   string `toml:"output,omitempty"`
	Style    string `toml:"style,omitempty"`
	Width    uint   `toml:"width,omitempty"`
	Sanitize bool   `toml:"sanitize,omitempty"`
	GFM      bool   `toml:"gfm,omitempty"`
}

type LogConfig struct {
	Debug bool `toml:"debug,omitempty"`
	JSON  bool `toml:"json,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func boolKey(name string, field func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = b
			return nil
		},
	}
}

func oneOfKey(name string, allowed []string, field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			if !slices.Contains(allowed, v) {
				return fmt.Errorf("invalid value for %s: %q (expected one of %s)", name, v, strings.Join(allowed, ", "))
			}
			*field(c) = v
			return nil
		},
	}
}

// Formats are the accepted client.format values.
var Formats = []string{"openai", "ollama", "besteffort", "auto"}

// Outputs are the accepted render.output values.
var Outputs = []string{OutputAuto, "html", "terminal", "plain"}

// keyOrder lists every key in configKeys in TOML section order.
var keyOrder = []string{
	"client.endpoint",
	"client.path",
	"client.param",
	"client.format",
	"client.timeout",
	"render.output",
	"render.style",
	"render.width",
	"render.sanitize",
	"render.gfm",
	"log.debug",
	"log.json",
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.endpoint": {
		get: func(c *Config) string { return c.Client.Endpoint },
		set: func(c *Config, v string) error {
			u, err := url.Parse(v)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid value for client.endpoint: %q is not an http(s) URL", v)
			}
			c.Client.Endpoint = v
			return nil
		},
	},
	"client.path": {
		get: func(c *Config) string { return c.Client.Path },
		set: func(c *Config, v string) error { c.Client.Path = v; return nil },
	},
	"client.param": {
		get: func(c *Config) string { return c.Client.Param },
		set: func(c *Config, v string) error { c.Client.Param = v; return nil },
	},
	"client.format": oneOfKey("client.format", Formats, func(c *Config) *string { return &c.Client.Format }),
	"client.timeout": {
		get: func(c *Config) string { return c.Client.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for client.timeout: %w", err)
			}
			c.Client.Timeout = v
			return nil
		},
	},
	"render.output": oneOfKey("render.output", Outputs, func(c *Config) *string { return &c.Render.Output }),
	"render.style": {
		get: func(c *Config) string { return c.Render.Style },
		set: func(c *Config, v string) error { c.Render.Style = v; return nil },
	},
	"render.width": {
		get: func(c *Config) string {
			if c.Render.Width == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Render.Width), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for render.width: %w", err)
			}
			c.Render.Width = uint(n)
			return nil
		},
	},
	"render.sanitize": boolKey("render.sanitize", func(c *Config) *bool { return &c.Render.Sanitize }),
	"render.gfm":      boolKey("render.gfm", func(c *Config) *bool { return &c.Render.GFM }),
	"log.debug":       boolKey("log.debug", func(c *Config) *bool { return &c.Log.Debug }),
	"log.json":        boolKey("log.json", func(c *Config) *bool { return &c.Log.JSON }),
}
