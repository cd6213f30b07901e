package ndjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decoder holds the running buffer of text seen since the last value was
// parsed. It is not safe for concurrent use; each stream owns its own.
type Decoder struct {
	buf []byte
}

// NewDecoder returns a Decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed splits a transport chunk on '\n' and pushes every segment in order,
// including the trailing segment after the last newline. It returns the
// complete and malformed results in stream order.
func (d *Decoder) Feed(chunk []byte) []Result {
	var results []Result
	for segment := range bytes.SplitSeq(chunk, []byte{'\n'}) {
		results = append(results, d.Push(segment)...)
	}
	return results
}

// Push appends one newline-free segment to the running buffer and classifies
// it. A buffer holding several concatenated values yields all of them.
// An incomplete buffer yields nothing and is kept for the next segment.
func (d *Decoder) Push(segment []byte) []Result {
	d.buf = append(d.buf, segment...)

	var results []Result
	for {
		res, ok := d.next()
		if !ok {
			return results
		}
		results = append(results, res)
		if res.Status == StatusMalformed {
			return results
		}
	}
}

// Buffered returns the number of bytes waiting for the rest of their value.
func (d *Decoder) Buffered() int {
	return len(bytes.TrimSpace(d.buf))
}

// next consumes at most one value from the head of the buffer. The boolean
// reports whether a result was produced.
//
// An incomplete buffer is decoded again from its start on every segment, so
// a value spread over k segments costs O(k*n) for n buffered bytes. Chat
// deltas are a few hundred bytes and almost always arrive whole.
func (d *Decoder) next() (Result, bool) {
	trimmed := bytes.TrimLeft(d.buf, " \t\r\n")
	if len(trimmed) == 0 {
		d.buf = d.buf[:0]
		return Result{Status: StatusIncomplete}, false
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var value json.RawMessage
	err := dec.Decode(&value)

	switch {
	case err == nil:
		rest := trimmed[dec.InputOffset():]
		n := copy(d.buf, rest)
		d.buf = d.buf[:n]
		return Result{Status: StatusComplete, Value: value}, true

	case errors.Is(err, io.ErrUnexpectedEOF):
		return Result{Status: StatusIncomplete}, false

	default:
		raw := bytes.Clone(trimmed)
		d.buf = d.buf[:0]
		return Result{
			Status: StatusMalformed,
			Err:    fmt.Errorf("%w: %w", ErrMalformed, err),
			Raw:    raw,
		}, true
	}
}
