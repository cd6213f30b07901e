package llm

// StreamChunk represents a single decoded fragment of a streamed chat
// response. This is the internal representation produced by the providers
// after parsing their specific streaming formats.
type StreamChunk struct {
	// Model that generated the chunk, when the fragment names one
	Model string `json:"model,omitempty"`

	// Role announced by the fragment (usually only on the first one)
	Role Role `json:"role,omitempty"`

	// Incremental text to append to the assistant message
	Content string `json:"content,omitempty"`

	// Finish reason (only present on the final fragment)
	FinishReason string `json:"finish_reason,omitempty"`

	// Whether the provider marked this as the final fragment
	Done bool `json:"done,omitempty"`

	// In-band error reported by the server instead of a delta
	Error string `json:"error,omitempty"`
}

// HasContent reports whether the chunk carries text for the accumulator.
func (c *StreamChunk) HasContent() bool {
	return c != nil && c.Content != ""
}
