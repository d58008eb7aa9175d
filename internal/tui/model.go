// Package tui is the terminal front-end for the chat client: a viewport
// transcript, a textarea for the question and a spinner while a question
// is in flight. All conversation state lives in chat.Client; the TUI is
// only a projection of it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/eoralab/casechat/internal/chat"
	"github.com/eoralab/casechat/internal/domain"
)

const welcomeText = "Задайте вопрос о кейсах EORA."

type (
	// statsMsg carries the formatted stats line after the initial load
	statsMsg string
	// answeredMsg signals SendQuestion finished (success or absorbed failure)
	answeredMsg struct{}
)

// Model is the bubbletea model for the interactive chat.
type Model struct {
	client *chat.Client

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	styles   styles

	statsLine string
	alertLine string
	isLoading bool
	width     int
	height    int
	ready     bool
}

// New creates the chat TUI around an existing chat client.
func New(client *chat.Client) Model {
	ta := textarea.New()
	ta.Placeholder = "Ваш вопрос..."
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	// Enter submits; alt+enter inserts a newline for multi-line questions
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:   client,
		textarea: ta,
		spinner:  sp,
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadStats())
}

func (m Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		return statsMsg(m.client.LoadStats(context.Background()))
	}
}

func (m Model) sendQuestion(question string) tea.Cmd {
	return func() tea.Msg {
		// Failures become error-flagged transcript entries inside the
		// client; nothing to surface here beyond the completion signal.
		_ = m.client.SendQuestion(context.Background(), question)
		return answeredMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshViewport()
		m.ready = true
		return m, nil

	case statsMsg:
		m.statsLine = string(msg)
		return m, nil

	case answeredMsg:
		m.isLoading = false
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Pick up the user message appended at submission time
		m.refreshViewport()
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.isLoading {
				return m, nil
			}
			question := m.textarea.Value()
			if strings.TrimSpace(question) == "" {
				m.alertLine = chat.EmptyInputAlert
				return m, nil
			}
			m.alertLine = ""
			m.textarea.Reset()
			m.isLoading = true
			return m, tea.Batch(m.spinner.Tick, m.sendQuestion(question))

		default:
			m.alertLine = ""
		}
	}

	// The input is disabled while a question is in flight
	if !m.isLoading {
		m.textarea, taCmd = m.textarea.Update(msg)
	}
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m *Model) resize() {
	// Header (title + stats), input area and help line around the viewport
	inputHeight := m.textarea.Height() + 1
	vpHeight := m.height - inputHeight - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	if m.ready {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(m.width, vpHeight)
	}
	m.textarea.SetWidth(m.width)
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	msgs := m.client.Messages()
	if len(msgs) == 0 {
		return m.styles.stats.Render(welcomeText)
	}

	blocks := make([]string, 0, len(msgs))
	for _, message := range msgs {
		blocks = append(blocks, m.renderMessage(message))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage shows content literally; it is never parsed as markup.
func (m Model) renderMessage(msg domain.Message) string {
	var b strings.Builder

	switch {
	case msg.Sender == domain.SenderUser:
		b.WriteString(m.styles.user.Render("Вы: " + msg.Content))
	case msg.IsError:
		b.WriteString(m.styles.errMsg.Render("Ассистент: " + msg.Content))
	default:
		b.WriteString(m.styles.bot.Render("Ассистент: " + msg.Content))
	}

	if len(msg.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.source.Render("Источники:"))
		for i, src := range msg.Sources {
			line := fmt.Sprintf("[%d] %s (%s)", i+1, src.Title, src.URL)
			b.WriteString("\n")
			b.WriteString(m.styles.source.Render(line))
		}
	}

	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "Загрузка..."
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("EORA Ассистент"))
	b.WriteString("\n")
	if m.statsLine != "" {
		b.WriteString(m.styles.stats.Render(m.statsLine))
	}
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.isLoading {
		b.WriteString(m.styles.loading.Render(m.spinner.View() + "Отправка..."))
	} else if m.alertLine != "" {
		b.WriteString(m.styles.alert.Render(m.alertLine))
	} else {
		b.WriteString(m.textarea.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("enter: отправить | alt+enter: новая строка | esc: выход"))

	return b.String()
}
