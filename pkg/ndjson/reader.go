package ndjson

import (
	"encoding/json"
	"errors"
	"io"
)

const defaultChunkSize = 32 * 1024

// Reader pulls complete JSON values out of a raw byte stream.
//
// ┌──────────────────┐
// │ source io.Reader │  transport chunks
// └──────────────────┘
// │
// ▼
// ┌──────────────────┐
// │  Decoder.Feed()  │  split on '\n', buffer, classify
// └──────────────────┘
// │
// ▼
// ┌──────────────────┐
// │  Reader.Next()   │  one json.RawMessage at a time
// └──────────────────┘
//
// A Reader is lazy: nothing is read from the source until Next is called, and
// it is scoped to a single stream.
type Reader struct {
	src     io.Reader
	dec     *Decoder
	chunk   []byte
	pending []Result
	eof     bool
	err     error

	chunks int
	bytes  int
}

// NewReader returns a Reader that decodes newline-delimited JSON from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:   src,
		dec:   NewDecoder(),
		chunk: make([]byte, defaultChunkSize),
	}
}

// Next returns the next complete JSON value from the stream. It blocks until
// a value is available or the source is exhausted.
//
// Next returns nil, nil when the source is exhausted. A partial value still
// buffered at that point is dropped; use Buffered to observe it.
//
// A malformed segment is reported as an error wrapping ErrMalformed. Such an
// error is not fatal and Next may be called again. Any other error comes from
// the source and is fatal; values decoded before it are still returned first.
func (r *Reader) Next() (json.RawMessage, error) {
	for {
		if len(r.pending) > 0 {
			res := r.pending[0]
			r.pending = r.pending[1:]
			if res.Status == StatusMalformed {
				return nil, res.Err
			}
			return res.Value, nil
		}

		if r.err != nil {
			return nil, r.err
		}
		if r.eof {
			return nil, nil
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.chunks++
			r.bytes += n
			r.pending = append(r.pending, r.dec.Feed(r.chunk[:n])...)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				r.eof = true
			} else {
				r.err = err
			}
		}
	}
}

// Buffered returns the number of bytes of an unfinished value.
func (r *Reader) Buffered() int {
	return r.dec.Buffered()
}

// Chunks returns the number of non-empty reads performed on the source.
func (r *Reader) Chunks() int {
	return r.chunks
}

// Bytes returns the total number of bytes read from the source.
func (r *Reader) Bytes() int {
	return r.bytes
}
