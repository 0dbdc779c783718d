package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chatReplyMsg carries the outcome of one SendMessage call.
type chatReplyMsg struct {
	reply *domain.ChatMessage
	err   error
}

// chatModel is the bubbletea model of the assistant chat: a scrollable
// transcript above a single-line input.
type chatModel struct {
	ctx        context.Context
	chat       chatSender
	briefingID string
	title      string

	transcript []domain.ChatMessage
	lastErr    error

	input    textinput.Model
	vp       viewport.Model
	spin     spinner.Model
	waiting  bool
	ready    bool
	width    int
	quitting bool
}

// chatSender is the part of service.ChatService the chat UIs need.
type chatSender interface {
	SendMessage(ctx context.Context, briefingID, text string) (*domain.ChatMessage, error)
}

func newChatModel(ctx context.Context, chat chatSender, b *domain.Briefing, history []domain.ChatMessage) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about the plan..."
	ti.Prompt = formatter.StyleBlue.Render("› ")
	ti.CharLimit = 2000
	ti.Focus()

	vp := viewport.New(0, 0)
	vp.KeyMap = chatViewportKeyMap()
	vp.MouseWheelEnabled = true

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))

	return chatModel{
		ctx:        ctx,
		chat:       chat,
		briefingID: b.ID,
		title:      b.Summary(40),
		transcript: domain.VisibleMessages(history),
		input:      ti,
		vp:         vp,
		spin:       sp,
	}
}

// chatViewportKeyMap scrolls with page and arrow keys only, so letters reach
// the input.
func chatViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-5, 3)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if text == "/exit" || text == "/quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.transcript = append(m.transcript, domain.ChatMessage{Role: domain.RoleUser, Text: text})
			m.waiting = true
			m.lastErr = nil
			m.refresh()
			return m, tea.Batch(m.spin.Tick, m.send(text))
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown, tea.KeyCtrlU, tea.KeyCtrlD:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}

	case chatReplyMsg:
		m.waiting = false
		m.lastErr = msg.err
		if msg.reply != nil {
			m.transcript = append(m.transcript, *msg.reply)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send calls the assistant off the UI goroutine.
func (m chatModel) send(text string) tea.Cmd {
	ctx, chat, id := m.ctx, m.chat, m.briefingID
	return func() tea.Msg {
		reply, err := chat.SendMessage(ctx, id, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *chatModel) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(formatter.FormatTranscript(m.transcript, m.width))
	m.vp.GotoBottom()
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return formatter.Dim("Loading...")
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	switch {
	case m.waiting:
		b.WriteString(m.spin.View() + formatter.Dim(" thinking..."))
	case m.lastErr != nil:
		b.WriteString(formatter.StyleRed.Render(formatter.Truncate(m.lastErr.Error(), max(m.width, 20))))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.ChatHelp())
	return b.String()
}
