package besteffort

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/papercomputeco/streamchat/pkg/llm"
)

var errInvalidJSON = errors.New("besteffort: invalid json fragment")

// contentPaths are tried in order; the first string hit wins.
var contentPaths = []string{
	"choices.0.delta.content",
	"choices.0.text",
	"message.content",
	"delta.text",
	"response",
	"content",
	"text",
}

// provider implements the Provider interface as a fallback for unknown stream
// formats. It probes the content locations common across LLM APIs.
type provider struct{}

func New() *provider { return &provider{} }

func (b *provider) Name() string {
	return "besteffort"
}

// CanHandle always returns true - this is the fallback provider.
func (b *provider) CanHandle(_ []byte) bool {
	return true
}

func (b *provider) ParseStreamChunk(payload []byte) (*llm.StreamChunk, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errInvalidJSON
	}

	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		return nil, nil
	}

	if msg := extractError(doc); msg != "" {
		return &llm.StreamChunk{Error: msg, Done: true}, nil
	}

	chunk := &llm.StreamChunk{
		Model: doc.Get("model").String(),
	}

	for _, path := range contentPaths {
		if v := doc.Get(path); v.Type == gjson.String && v.Str != "" {
			chunk.Content = v.Str
			break
		}
	}

	if done := doc.Get("done"); done.IsBool() {
		chunk.Done = done.Bool()
	}

	for _, path := range []string{"choices.0.finish_reason", "done_reason", "stop_reason", "finish_reason"} {
		if v := doc.Get(path); v.Type == gjson.String {
			chunk.FinishReason = v.Str
			chunk.Done = true
			break
		}
	}

	if !chunk.HasContent() && !chunk.Done {
		return nil, nil
	}

	return chunk, nil
}

func extractError(doc gjson.Result) string {
	errField := doc.Get("error")
	switch {
	case errField.Type == gjson.String:
		return errField.Str
	case errField.IsObject():
		return errField.Get("message").String()
	default:
		return ""
	}
}
