package chatcmder

import (
	"fmt"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/llm"
)

// Messages sent from a running turn into the bubbletea program.
type (
	nodeAppendedMsg struct {
		id   string
		role llm.Role
	}

	nodeContentMsg struct {
		id      string
		content string
	}

	nodeScrollMsg struct {
		id string
	}

	inputClearedMsg struct{}
)

// programSender is filled in once the program exists. Sends after the
// program has exited are dropped by bubbletea.
type programSender struct {
	program *bubbletea.Program
}

func (s *programSender) Send(msg bubbletea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// tuiView is the chatclient.View of one submission. Each turn owns its own
// view, so concurrent turns never share nodes.
type tuiView struct {
	input string
	send  func(bubbletea.Msg)
}

func (v *tuiView) Input() string {
	return v.input
}

func (v *tuiView) Append(role llm.Role) (chatclient.Node, error) {
	if role != llm.RoleUser && role != llm.RoleAssistant {
		return nil, fmt.Errorf("%w: %q", chatclient.ErrUnknownRole, role)
	}

	n := &tuiNode{id: uuid.NewString(), send: v.send}
	v.send(nodeAppendedMsg{id: n.id, role: role})
	return n, nil
}

func (v *tuiView) ClearInput() {
	v.send(inputClearedMsg{})
}

type tuiNode struct {
	id   string
	send func(bubbletea.Msg)
}

func (n *tuiNode) ID() string {
	return n.id
}

func (n *tuiNode) SetContent(content string) {
	n.send(nodeContentMsg{id: n.id, content: content})
}

func (n *tuiNode) ScrollIntoView() {
	n.send(nodeScrollMsg{id: n.id})
}
