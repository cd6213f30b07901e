package ollama

import (
	"encoding/json"

	"github.com/papercomputeco/streamchat/pkg/llm"
)

// provider implements the Provider interface for Ollama's native chat stream.
type provider struct{}

func New() *provider { return &provider{} }

func (o *provider) Name() string {
	return "ollama"
}

func (o *provider) CanHandle(payload []byte) bool {
	var probe struct {
		Message   *ollamaMessage `json:"message"`
		Done      *bool          `json:"done"`
		CreatedAt string         `json:"created_at"`

		// Ollama-specific final chunk fields
		TotalDuration int64 `json:"total_duration"`
		EvalCount     int   `json:"eval_count"`
	}

	if err := json.Unmarshal(payload, &probe); err != nil {
		return false
	}

	// Every streamed chunk carries "done"; content chunks carry "message".
	if probe.Done != nil && (probe.Message != nil || probe.CreatedAt != "") {
		return true
	}

	return probe.TotalDuration > 0 || probe.EvalCount > 0
}

func (o *provider) ParseStreamChunk(payload []byte) (*llm.StreamChunk, error) {
	var chunk ollamaStreamChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return nil, err
	}

	if chunk.Error != "" {
		return &llm.StreamChunk{Model: chunk.Model, Error: chunk.Error, Done: true}, nil
	}

	result := &llm.StreamChunk{
		Model:        chunk.Model,
		Done:         chunk.Done,
		FinishReason: chunk.DoneReason,
	}
	if chunk.Message != nil {
		result.Role = llm.Role(chunk.Message.Role)
		result.Content = chunk.Message.Content
	}

	if !result.HasContent() && !result.Done {
		return nil, nil
	}

	return result, nil
}
