package chatclient

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/streamchat/pkg/llm"
)

// Writer is a View over a plain output stream such as a pipe or a dumb
// terminal. A user node prints one prompt line. An assistant node prints
// only what is new when a rendering extends the previous one, which is
// always the case for raw markdown. Any other rendering is printed in full
// on a fresh line, unless WithFinalRendering holds it back.
type Writer struct {
	mu              sync.Mutex
	w               io.Writer
	input           string
	userPrefix      string
	assistantPrefix string
	hideUser        bool
	final           bool
	reply           *writerNode
	lineOpen        bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPrefixes sets the text printed before user and assistant messages.
func WithPrefixes(user, assistant string) WriterOption {
	return func(w *Writer) {
		w.userPrefix = user
		w.assistantPrefix = assistant
	}
}

// WithoutUserEcho stops user messages from being printed.
func WithoutUserEcho() WriterOption {
	return func(w *Writer) {
		w.hideUser = true
	}
}

// WithFinalRendering holds assistant content back and prints only the last
// rendering once the reply has finished streaming. HTML and styled terminal
// renderings are rebuilt from scratch on every fragment, so printing each one
// would repeat the reply. A reply that fails before the end is not printed.
func WithFinalRendering() WriterOption {
	return func(w *Writer) {
		w.final = true
	}
}

// NewWriter returns a Writer printing to w with message as its input.
func NewWriter(w io.Writer, message string, opts ...WriterOption) *Writer {
	wr := &Writer{
		w:               w,
		input:           message,
		userPrefix:      "you> ",
		assistantPrefix: "assistant> ",
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

func (w *Writer) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// SetInput sets the message the next Submit will send, so one Writer can
// carry a whole line-mode session.
func (w *Writer) SetInput(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = message
}

func (w *Writer) Append(role llm.Role) (Node, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch role {
	case llm.RoleUser:
		return &writerNode{parent: w, id: uuid.NewString(), role: role}, nil
	case llm.RoleAssistant:
		n := &writerNode{parent: w, id: uuid.NewString(), role: role}
		if w.final {
			w.reply = n
			return n, nil
		}
		w.endLine()
		w.write(w.assistantPrefix)
		return n, nil
	default:
		return nil, ErrUnknownRole
	}
}

// ClearInput empties the input, prints a held-back reply and terminates the
// reply line.
func (w *Writer) ClearInput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = ""

	if w.reply != nil {
		w.endLine()
		w.write(w.assistantPrefix)
		w.write(w.reply.printed)
		w.reply = nil
	}
	w.endLine()
}

// write and endLine expect w.mu to be held.
func (w *Writer) write(s string) {
	if s == "" {
		return
	}
	_, _ = io.WriteString(w.w, s)
	w.lineOpen = !strings.HasSuffix(s, "\n")
}

func (w *Writer) endLine() {
	if w.lineOpen {
		w.write("\n")
	}
}

type writerNode struct {
	parent  *Writer
	id      string
	role    llm.Role
	printed string
}

func (n *writerNode) ID() string {
	return n.id
}

func (n *writerNode) SetContent(content string) {
	w := n.parent
	w.mu.Lock()
	defer w.mu.Unlock()

	if n.role == llm.RoleUser {
		if w.hideUser {
			return
		}
		w.endLine()
		w.write(fmt.Sprintf("%s%s\n", w.userPrefix, content))
		return
	}

	if w.final {
		n.printed = content
		return
	}

	if strings.HasPrefix(content, n.printed) {
		w.write(content[len(n.printed):])
	} else {
		w.endLine()
		w.write(content)
	}
	n.printed = content
}

func (n *writerNode) ScrollIntoView() {}
