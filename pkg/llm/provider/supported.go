package provider

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/streamchat/pkg/llm/provider/besteffort"
	"github.com/papercomputeco/streamchat/pkg/llm/provider/ollama"
	"github.com/papercomputeco/streamchat/pkg/llm/provider/openai"
)

// Stream dialect names accepted by New and the client.format setting.
const (
	OpenAI     = "openai"
	Ollama     = "ollama"
	BestEffort = "besteffort"

	// Auto detects the dialect of every fragment independently.
	Auto = "auto"
)

var constructors = []struct {
	name string
	new  func() Provider
}{
	{OpenAI, func() Provider { return openai.New() }},
	{Ollama, func() Provider { return ollama.New() }},
	{BestEffort, func() Provider { return besteffort.New() }},
	{Auto, func() Provider { return NewDetector() }},
}

// SupportedProviders returns the dialect names New accepts.
func SupportedProviders() []string {
	names := make([]string, len(constructors))
	for i, c := range constructors {
		names[i] = c.name
	}
	return names
}

// New returns the Provider for a dialect name. Names are case-insensitive.
func New(name string) (Provider, error) {
	for _, c := range constructors {
		if strings.EqualFold(c.name, name) {
			return c.new(), nil
		}
	}
	return nil, fmt.Errorf("unknown stream format: %q (supported: %s)", name, strings.Join(SupportedProviders(), ", "))
}
