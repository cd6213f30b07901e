package chatclient

import "github.com/papercomputeco/streamchat/pkg/llm"

// View is the page a Client drives: an input field, a message list built
// from per-role templates, and a way to reset the input.
type View interface {
	// Input returns the current text of the message input.
	Input() string

	// Append instantiates the template for role and adds the new node to
	// the end of the message list.
	Append(role llm.Role) (Node, error)

	// ClearInput resets the message input to empty.
	ClearInput()
}

// Node is one message in the list.
type Node interface {
	ID() string

	// SetContent replaces the node's content. It never appends.
	SetContent(content string)

	// ScrollIntoView brings the node into the visible area.
	ScrollIntoView()
}
