package chatclient

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/streamchat/pkg/llm"
)

// ErrUnknownRole is returned by Append when no template exists for a role.
var ErrUnknownRole = errors.New("no template for role")

// Recorder is an in-memory View. It keeps every node together with the
// history of contents written to it. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	input   string
	cleared int
	nodes   []*RecordedNode
}

// NewRecorder returns a Recorder whose input holds message.
func NewRecorder(message string) *Recorder {
	return &Recorder{input: message}
}

func (r *Recorder) Input() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.input
}

func (r *Recorder) Append(role llm.Role) (Node, error) {
	if role != llm.RoleUser && role != llm.RoleAssistant {
		return nil, ErrUnknownRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := &RecordedNode{rec: r, id: uuid.NewString(), role: role}
	r.nodes = append(r.nodes, n)
	return n, nil
}

func (r *Recorder) ClearInput() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = ""
	r.cleared++
}

// Cleared returns how many times the input was cleared.
func (r *Recorder) Cleared() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cleared
}

// Nodes returns the message list in order.
func (r *Recorder) Nodes() []*RecordedNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.nodes)
}

// RecordedNode is a node appended to a Recorder.
type RecordedNode struct {
	rec     *Recorder
	id      string
	role    llm.Role
	history []string
	scrolls int
}

func (n *RecordedNode) ID() string {
	return n.id
}

func (n *RecordedNode) Role() llm.Role {
	return n.role
}

func (n *RecordedNode) SetContent(content string) {
	n.rec.mu.Lock()
	defer n.rec.mu.Unlock()
	n.history = append(n.history, content)
}

func (n *RecordedNode) ScrollIntoView() {
	n.rec.mu.Lock()
	defer n.rec.mu.Unlock()
	n.scrolls++
}

// Content returns the node's current content.
func (n *RecordedNode) Content() string {
	n.rec.mu.Lock()
	defer n.rec.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// History returns every content the node has held, oldest first.
func (n *RecordedNode) History() []string {
	n.rec.mu.Lock()
	defer n.rec.mu.Unlock()
	return slices.Clone(n.history)
}

// Scrolls returns how many times the node was scrolled into view.
func (n *RecordedNode) Scrolls() int {
	n.rec.mu.Lock()
	defer n.rec.mu.Unlock()
	return n.scrolls
}
