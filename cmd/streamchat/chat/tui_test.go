package chatcmder

import (
	"context"
	"errors"
	"strings"
	"sync"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/llm"
	"github.com/papercomputeco/streamchat/pkg/render"
	testutils "github.com/papercomputeco/streamchat/pkg/utils/test"
)

// inbox collects what a turn sends to the program.
type inbox struct {
	mu   sync.Mutex
	msgs []bubbletea.Msg
}

func (i *inbox) send(msg bubbletea.Msg) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.msgs = append(i.msgs, msg)
}

func (i *inbox) drain() []bubbletea.Msg {
	i.mu.Lock()
	defer i.mu.Unlock()
	msgs := i.msgs
	i.msgs = nil
	return msgs
}

func apply(m chatModel, msgs ...bubbletea.Msg) chatModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(chatModel)
	}
	return m
}

var _ = Describe("Chat TUI", func() {
	var (
		server *testutils.ChatServer
		client *chatclient.Client
		box    *inbox
		model  chatModel
	)

	BeforeEach(func() {
		server = testutils.NewChatServer()

		var err error
		client, err = chatclient.New(chatclient.Config{Endpoint: server.URL},
			chatclient.WithRenderer(render.NewPlain()),
		)
		Expect(err).NotTo(HaveOccurred())

		box = &inbox{}
		model = newChatModel(context.Background(), client, box.send)
		model = apply(model, bubbletea.WindowSizeMsg{Width: 80, Height: 24})
	})

	AfterEach(func() {
		server.Close()
	})

	It("shows a placeholder before the first resize", func() {
		fresh := newChatModel(context.Background(), client, box.send)
		Expect(fresh.View()).To(ContainSubstring("Initializing"))
	})

	It("lays out the header with the endpoint", func() {
		Expect(model.ready).To(BeTrue())
		Expect(model.View()).To(ContainSubstring("streamchat"))
		Expect(model.View()).To(ContainSubstring(server.URL))
		Expect(model.viewport.Height).To(Equal(24 - headerHeight - inputHeight - inputChrome - footerHeight))
	})

	It("renders a full turn streamed through the view", func() {
		server.Reply(testutils.Fragment("Hi"), testutils.Fragment(" there"))
		model.textarea.SetValue("hello")

		cmd := model.submit("hello")
		done := cmd()
		Expect(done).To(BeAssignableToTypeOf(turnDoneMsg{}))

		model = apply(model, box.drain()...)
		model = apply(model, done)

		Expect(model.nodes).To(HaveLen(2))
		Expect(model.nodes[0].role).To(Equal(llm.RoleUser))
		Expect(model.nodes[0].content).To(Equal("hello"))
		Expect(model.nodes[1].role).To(Equal(llm.RoleAssistant))
		Expect(model.nodes[1].content).To(Equal("Hi there"))

		Expect(model.textarea.Value()).To(BeEmpty())
		Expect(model.lastReply).To(Equal("Hi there"))
		Expect(model.lastErr).NotTo(HaveOccurred())
		Expect(model.viewport.View()).To(ContainSubstring("Hi there"))
	})

	It("keeps the input when the request fails", func() {
		server.ReplyStatus(503, "down")
		model.textarea.SetValue("hello")
		model.inFlight = 1

		done := model.submit("hello")()
		model = apply(model, box.drain()...)
		model = apply(model, done)

		Expect(model.textarea.Value()).To(Equal("hello"))
		Expect(model.inFlight).To(BeZero())
		Expect(model.statusBar()).To(ContainSubstring("503"))
	})

	It("records offsets and scrolls a node to the top", func() {
		model = apply(model,
			nodeAppendedMsg{id: "u1", role: llm.RoleUser},
			nodeContentMsg{id: "u1", content: "first"},
			nodeAppendedMsg{id: "a1", role: llm.RoleAssistant},
			nodeContentMsg{id: "a1", content: strings.Repeat("line\n", 40)},
			nodeAppendedMsg{id: "u2", role: llm.RoleUser},
			nodeContentMsg{id: "u2", content: "second"},
		)

		Expect(model.offsets["u1"]).To(Equal(0))
		Expect(model.offsets["a1"]).To(Equal(3))
		Expect(model.offsets["u2"]).To(BeNumerically(">", 40))

		model = apply(model, nodeScrollMsg{id: "a1"})
		Expect(model.viewport.YOffset).To(Equal(3))
	})

	It("ignores content for unknown nodes", func() {
		model = apply(model, nodeContentMsg{id: "missing", content: "x"})
		Expect(model.nodes).To(BeEmpty())
	})

	It("starts a turn on enter without clearing the input", func() {
		model.textarea.SetValue("hello")

		next, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEnter})
		model = next.(chatModel)

		Expect(cmd).NotTo(BeNil())
		Expect(model.inFlight).To(Equal(1))
		Expect(model.textarea.Value()).To(Equal("hello"))
		Expect(model.statusBar()).To(ContainSubstring("streaming 1"))
	})

	It("allows an empty submission", func() {
		_, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEnter})
		Expect(cmd).NotTo(BeNil())
	})

	It("quits on /exit", func() {
		model.textarea.SetValue("/exit")
		_, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEnter})
		Expect(cmd()).To(Equal(bubbletea.QuitMsg{}))
	})

	It("quits on esc", func() {
		_, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyEsc})
		Expect(cmd()).To(Equal(bubbletea.QuitMsg{}))
	})

	It("shows in-band server errors in the status bar", func() {
		model = apply(model, turnDoneMsg{turn: &chatclient.Turn{Content: "partial", Errors: []string{"overloaded"}}})
		Expect(model.statusBar()).To(ContainSubstring("overloaded"))
		Expect(model.lastReply).To(Equal("partial"))
	})

	It("reports copying before any reply as an error", func() {
		_, cmd := model.Update(bubbletea.KeyMsg{Type: bubbletea.KeyCtrlY})
		model = apply(model, cmd())
		Expect(errors.Is(model.lastErr, errNoReply)).To(BeTrue())
	})

	It("truncates the status bar to the window width", func() {
		model = apply(model, turnDoneMsg{err: errors.New(strings.Repeat("x", 200))})
		Expect(ansi.StringWidth(model.statusBar())).To(BeNumerically("<=", 80))
	})
})

var _ = Describe("tuiView", func() {
	It("sends node messages for user and assistant nodes", func() {
		box := &inbox{}
		view := &tuiView{input: "hi", send: box.send}
		Expect(view.Input()).To(Equal("hi"))

		node, err := view.Append(llm.RoleAssistant)
		Expect(err).NotTo(HaveOccurred())
		node.SetContent("text")
		node.ScrollIntoView()
		view.ClearInput()

		Expect(box.drain()).To(Equal([]bubbletea.Msg{
			nodeAppendedMsg{id: node.ID(), role: llm.RoleAssistant},
			nodeContentMsg{id: node.ID(), content: "text"},
			nodeScrollMsg{id: node.ID()},
			inputClearedMsg{},
		}))
	})

	It("rejects roles without a block", func() {
		view := &tuiView{send: func(bubbletea.Msg) {}}
		_, err := view.Append(llm.RoleSystem)
		Expect(err).To(MatchError(chatclient.ErrUnknownRole))
	})
})

var _ = Describe("programSender", func() {
	It("drops messages before the program exists", func() {
		s := &programSender{}
		Expect(func() { s.Send(inputClearedMsg{}) }).NotTo(Panic())
	})
})
