// Package ndjson provides a minimal, purpose-built incremental decoder for
// newline-delimited JSON streams, as produced by chat endpoints that emit one
// completion delta object per line.
//
// Transport chunks are split on '\n' and every segment is appended to a
// running buffer. After each append the buffer is classified as complete,
// incomplete (a valid prefix of a JSON value) or malformed. Incomplete
// buffers are kept and grow with the next segment, which tolerates objects
// split across network packets.
//
// Splitting happens on raw bytes, never on decoded text: '\n' cannot occur
// inside a multi-byte UTF-8 sequence, and JSON string encoding always escapes
// newlines, so a newline in the byte stream is never part of a string value.
package ndjson

import (
	"encoding/json"
	"errors"
)

// ErrMalformed is wrapped by errors describing a buffer that can never become
// valid JSON. It is not fatal to a Reader.
var ErrMalformed = errors.New("malformed json fragment")

// Status classifies the running buffer after a segment has been pushed.
type Status int

const (
	// StatusIncomplete means the buffer is empty or holds a valid prefix of
	// a JSON value. The buffer is retained.
	StatusIncomplete Status = iota

	// StatusComplete means a full JSON value was consumed from the buffer.
	StatusComplete

	// StatusMalformed means the buffer is syntactically invalid. The buffer
	// is discarded.
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusComplete:
		return "complete"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is a single outcome produced by the Decoder.
type Result struct {
	Status Status

	// Value is the raw JSON value. Only set for StatusComplete.
	Value json.RawMessage

	// Err describes the syntax problem. Only set for StatusMalformed and
	// always wraps ErrMalformed.
	Err error

	// Raw is the discarded buffer content. Only set for StatusMalformed.
	Raw []byte
}
