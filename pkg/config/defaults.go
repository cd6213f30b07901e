package config

const (
	defaultEndpoint = "http://localhost:50505"
	defaultPath     = "/chat"
	defaultParam    = "message"
	defaultFormat   = "openai"
	defaultTimeout  = "0s"

	// OutputAuto picks terminal output on a TTY and HTML otherwise.
	OutputAuto = "auto"

	defaultStyle = "auto"
	defaultWidth = 80
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			Endpoint: defaultEndpoint,
			Path:     defaultPath,
			Param:    defaultParam,
			Format:   defaultFormat,
			Timeout:  defaultTimeout,
		},
		Render: RenderConfig{
			Output: OutputAuto,
			Style:  defaultStyle,
			Width:  defaultWidth,
		},
	}
}
