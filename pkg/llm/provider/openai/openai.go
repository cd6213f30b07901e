// Package openai
package openai

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/papercomputeco/streamchat/pkg/llm"
)

var errInvalidJSON = errors.New("openai: invalid json fragment")

// provider implements the Provider interface for OpenAI's streamed Chat
// Completions deltas.
type provider struct{}

func New() *provider { return &provider{} }

func (o *provider) Name() string {
	return "openai"
}

func (o *provider) CanHandle(payload []byte) bool {
	if !gjson.ValidBytes(payload) {
		return false
	}

	if gjson.GetBytes(payload, pathObject).String() == chunkObject {
		return true
	}

	return gjson.GetBytes(payload, pathChoices).IsArray()
}

// ParseStreamChunk extracts choices[0].delta.content. Content is only taken
// when it is a non-empty string; fragments with no choices (content filter
// preambles), a null delta or a role-only delta carry nothing to append.
func (o *provider) ParseStreamChunk(payload []byte) (*llm.StreamChunk, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errInvalidJSON
	}

	if msg := errorMessage(payload); msg != "" {
		return &llm.StreamChunk{Error: msg, Done: true}, nil
	}

	choices := gjson.GetBytes(payload, pathChoices)
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return nil, nil
	}

	chunk := &llm.StreamChunk{
		Model: gjson.GetBytes(payload, pathModel).String(),
	}

	if content := gjson.GetBytes(payload, pathContent); content.Type == gjson.String {
		chunk.Content = content.Str
	}

	if role := gjson.GetBytes(payload, pathRole); role.Type == gjson.String {
		chunk.Role = llm.Role(role.Str)
	}

	if reason := gjson.GetBytes(payload, pathFinishReason); reason.Type == gjson.String {
		chunk.FinishReason = reason.Str
		chunk.Done = true
	}

	if chunk.Content == "" && chunk.FinishReason == "" && chunk.Role == "" {
		return nil, nil
	}

	return chunk, nil
}

// errorMessage reads the in-band error shape, either {"error": "text"} or
// {"error": {"message": "text"}}.
func errorMessage(payload []byte) string {
	errField := gjson.GetBytes(payload, pathError)
	switch {
	case errField.Type == gjson.String:
		return errField.Str
	case errField.IsObject():
		return gjson.GetBytes(payload, pathErrorMessage).String()
	default:
		return ""
	}
}
