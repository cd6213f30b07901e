package provider

import (
	"github.com/papercomputeco/streamchat/pkg/llm"
)

// Provider defines the interface for decoding one streamed fragment of a
// chat response. Each provider implementation knows how to detect and parse
// its specific stream format into the internal representation.
type Provider interface {
	// Name returns the canonical provider name (e.g., "openai", "ollama", "besteffort")
	Name() string

	// CanHandle returns true if the fragment appears to be in this provider's
	// format. Implementations check for provider-specific markers such as
	// field names or response structure.
	CanHandle(payload []byte) bool

	// ParseStreamChunk converts a single streamed JSON fragment into the
	// internal format. Returns (nil, nil) if the fragment carries nothing
	// usable and should be silently skipped. Returns an error only when the
	// payload is not JSON at all.
	ParseStreamChunk(payload []byte) (*llm.StreamChunk, error)
}
