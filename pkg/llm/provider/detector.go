// Package provider decodes the JSON fragments of a streamed chat response
// into llm.StreamChunk values, one implementation per wire dialect.
package provider

import (
	"github.com/papercomputeco/streamchat/pkg/llm"
	"github.com/papercomputeco/streamchat/pkg/llm/provider/besteffort"
	"github.com/papercomputeco/streamchat/pkg/llm/provider/ollama"
	"github.com/papercomputeco/streamchat/pkg/llm/provider/openai"
)

// Detector manages provider detection by checking registered providers in order.
// A Detector is itself a Provider: it parses each fragment with whichever
// provider claims it.
type Detector struct {
	providers []Provider
	fallback  Provider
}

// NewDetector creates a new Detector with the default set of providers.
// Providers are checked in order: OpenAI, Ollama, then BestEffort as fallback.
func NewDetector() *Detector {
	return &Detector{
		providers: []Provider{
			openai.New(),
			ollama.New(),
		},
		fallback: besteffort.New(),
	}
}

// Detect returns the appropriate provider for the given fragment.
// It iterates through registered providers and returns the first one
// that reports it can handle the payload. If no provider matches,
// BestEffort is returned as the fallback.
func (d *Detector) Detect(payload []byte) Provider {
	for _, p := range d.providers {
		if p.CanHandle(payload) {
			return p
		}
	}
	return d.fallback
}

func (d *Detector) Name() string {
	return Auto
}

// CanHandle always returns true, the fallback accepts anything.
func (d *Detector) CanHandle(_ []byte) bool {
	return true
}

func (d *Detector) ParseStreamChunk(payload []byte) (*llm.StreamChunk, error) {
	return d.Detect(payload).ParseStreamChunk(payload)
}
