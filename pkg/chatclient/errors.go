package chatclient

import (
	"fmt"
	"net/http"
)

// TransportError reports a request that could not be sent or a response body
// that failed mid-read. The input is left untouched when it is returned.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx response from the chat endpoint.
type StatusError struct {
	StatusCode int
	URL        string

	// Body holds the start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("chat endpoint %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}
