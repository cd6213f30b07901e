package chatclient

import "github.com/papercomputeco/streamchat/pkg/config"

// FromConfig converts the [client] section of config.toml into a Config.
func FromConfig(c config.ClientConfig) (Config, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Endpoint: c.Endpoint,
		Path:     c.Path,
		Param:    c.Param,
		Format:   c.Format,
		Timeout:  timeout,
	}, nil
}
