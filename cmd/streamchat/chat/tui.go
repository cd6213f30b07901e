package chatcmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/streamchat/pkg/chatclient"
	"github.com/papercomputeco/streamchat/pkg/llm"
)

const (
	headerHeight = 1
	inputHeight  = 3
	inputChrome  = 2
	footerHeight = 2
	minVPHeight  = 3
)

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	tuiMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tuiErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	tuiNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	tuiUserLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	tuiReplyLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	tuiUserBlock   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("252"))
	tuiInputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

type tuiKeyMap struct {
	Send       key.Binding
	Newline    key.Binding
	Copy       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

func (k tuiKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Newline, k.Copy, k.ScrollUp, k.ScrollDown, k.Quit}
}

func (k tuiKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Newline, k.Copy}, {k.ScrollUp, k.ScrollDown, k.Quit}}
}

func defaultTUIKeyMap() tuiKeyMap {
	return tuiKeyMap{
		Send:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy reply")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

type (
	turnDoneMsg struct {
		turn *chatclient.Turn
		err  error
	}

	copiedMsg struct {
		err error
	}
)

type chatNode struct {
	id      string
	role    llm.Role
	content string
}

type chatModel struct {
	ctx      context.Context
	client   *chatclient.Client
	send     func(bubbletea.Msg)
	endpoint string

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     tuiKeyMap

	nodes   []*chatNode
	byID    map[string]*chatNode
	offsets map[string]int

	inFlight  int
	lastReply string
	lastErr   error
	notice    string

	width  int
	height int
	ready  bool
}

func runTUI(ctx context.Context, client *chatclient.Client) error {
	out := termenv.NewOutput(os.Stdout)
	lipgloss.SetColorProfile(out.EnvColorProfile())
	lipgloss.SetHasDarkBackground(out.HasDarkBackground())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sender := &programSender{}
	model := newChatModel(ctx, client, sender.Send)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
		bubbletea.WithMouseCellMotion(),
	)
	sender.program = program

	_, err := program.Run()
	return err
}

func newChatModel(ctx context.Context, client *chatclient.Client, send func(bubbletea.Msg)) chatModel {
	keys := defaultTUIKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tuiTitleStyle

	return chatModel{
		ctx:      ctx,
		client:   client,
		send:     send,
		endpoint: client.Endpoint(),
		textarea: ta,
		viewport: viewport.New(0, 0),
		spinner:  s,
		help:     help.New(),
		keys:     keys,
		byID:     map[string]*chatNode{},
		offsets:  map[string]int{},
	}
}

func (m chatModel) Init() bubbletea.Cmd {
	return textarea.Blink
}

func (m chatModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	var cmds []bubbletea.Cmd

	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, bubbletea.Quit

		case key.Matches(msg, m.keys.Send):
			input := m.textarea.Value()
			if strings.TrimSpace(input) == "/exit" {
				return m, bubbletea.Quit
			}
			m.notice = ""
			m.inFlight++
			cmds = append(cmds, m.submit(input))
			if m.inFlight == 1 {
				cmds = append(cmds, m.spinner.Tick)
			}
			return m, bubbletea.Batch(cmds...)

		case key.Matches(msg, m.keys.Copy):
			return m, copyReply(m.lastReply)

		case key.Matches(msg, m.keys.ScrollUp):
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
			return m, nil
		}

		var cmd bubbletea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	case bubbletea.MouseMsg:
		var cmd bubbletea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case nodeAppendedMsg:
		n := &chatNode{id: msg.id, role: msg.role}
		m.nodes = append(m.nodes, n)
		m.byID[n.id] = n
		m.refresh()

	case nodeContentMsg:
		if n, ok := m.byID[msg.id]; ok {
			n.content = msg.content
			m.refresh()
		}

	case nodeScrollMsg:
		if offset, ok := m.offsets[msg.id]; ok {
			m.viewport.SetYOffset(offset)
		}

	case inputClearedMsg:
		m.textarea.Reset()

	case turnDoneMsg:
		m.inFlight = max(m.inFlight-1, 0)
		switch {
		case msg.err != nil:
			m.lastErr = msg.err
		case msg.turn != nil && len(msg.turn.Errors) > 0:
			m.lastErr = fmt.Errorf("server error: %s", msg.turn.Errors[len(msg.turn.Errors)-1])
			m.lastReply = msg.turn.Content
		case msg.turn != nil:
			m.lastErr = nil
			m.lastReply = msg.turn.Content
		}

	case copiedMsg:
		if msg.err != nil {
			m.lastErr = fmt.Errorf("copying reply: %w", msg.err)
		} else {
			m.notice = "reply copied"
		}

	case spinner.TickMsg:
		if m.inFlight > 0 {
			var cmd bubbletea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, bubbletea.Batch(cmds...)
}

func (m chatModel) View() string {
	if !m.ready {
		return tuiMutedStyle.Render("  Initializing...")
	}

	header := tuiTitleStyle.Render("streamchat") + tuiMutedStyle.Render("  "+m.endpoint)
	input := tuiInputStyle.Width(max(m.width-2, 1)).Render(m.textarea.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		ansi.Truncate(header, m.width, "…"),
		m.viewport.View(),
		input,
		m.statusBar(),
		tuiMutedStyle.Render(m.help.View(m.keys)),
	)
}

// submit runs one turn in a bubbletea command goroutine. The turn reports
// its nodes back through m.send.
func (m chatModel) submit(input string) bubbletea.Cmd {
	view := &tuiView{input: input, send: m.send}
	client := m.client
	ctx := m.ctx

	return func() bubbletea.Msg {
		turn, err := client.Submit(ctx, view)
		return turnDoneMsg{turn: turn, err: err}
	}
}

func (m *chatModel) resize() {
	vpHeight := max(m.height-headerHeight-inputHeight-inputChrome-footerHeight, minVPHeight)

	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(max(m.width-4, 1))
	m.help.Width = m.width
}

// refresh rebuilds the message list and records the first line of every
// node so ScrollIntoView can align it with the top of the viewport.
func (m *chatModel) refresh() {
	var b strings.Builder
	line := 0

	for i, n := range m.nodes {
		if i > 0 {
			b.WriteString("\n")
			line++
		}
		m.offsets[n.id] = line

		block := m.renderNode(n)
		b.WriteString(block)
		b.WriteString("\n")
		line += lipgloss.Height(block)
	}

	m.viewport.SetContent(b.String())
}

func (m *chatModel) renderNode(n *chatNode) string {
	if n.role == llm.RoleUser {
		width := max(m.viewport.Width-2, 10)
		return tuiUserLabel.Render("you") + "\n" + tuiUserBlock.Width(width).Render(n.content)
	}

	return tuiReplyLabel.Render("assistant") + "\n" + strings.Trim(n.content, "\n")
}

func (m chatModel) statusBar() string {
	parts := []string{}

	if m.inFlight > 0 {
		parts = append(parts, fmt.Sprintf("%s streaming %d", m.spinner.View(), m.inFlight))
	} else {
		parts = append(parts, tuiMutedStyle.Render("ready"))
	}

	switch {
	case m.lastErr != nil:
		parts = append(parts, tuiErrorStyle.Render(m.lastErr.Error()))
	case m.notice != "":
		parts = append(parts, tuiNoticeStyle.Render(m.notice))
	}

	return ansi.Truncate(strings.Join(parts, tuiMutedStyle.Render(" · ")), m.width, "…")
}

var errNoReply = errors.New("no reply yet")

func copyReply(reply string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		if reply == "" {
			return copiedMsg{err: errNoReply}
		}
		return copiedMsg{err: clipboard.WriteAll(reply)}
	}
}
