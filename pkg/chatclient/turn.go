package chatclient

import "time"

// Turn summarizes one submit-to-completion cycle.
type Turn struct {
	// ID correlates the turn's log lines.
	ID string

	// Message is the submitted input text.
	Message string

	// Content is the final accumulated assistant text.
	Content string

	// Rendered is the last rendering written to the assistant node.
	Rendered string

	// Fragments counts the complete JSON values read from the stream.
	Fragments int

	// Applied counts fragments that extended the accumulator.
	Applied int

	// Skipped counts fragments that carried no content.
	Skipped int

	// Malformed counts stream segments that were not valid JSON.
	Malformed int

	// Errors holds in-band error messages reported by the server.
	Errors []string

	Model        string
	FinishReason string
	Duration     time.Duration
}
