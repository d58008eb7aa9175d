package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoralab/casechat/internal/chat"
	"github.com/eoralab/casechat/internal/domain"
)

type stubBackend struct{}

func (stubBackend) Ask(ctx context.Context, question, sessionID string) (*domain.AskResponse, error) {
	return &domain.AskResponse{Answer: "ok"}, nil
}

func (stubBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	return &domain.Stats{TotalChunks: 1}, nil
}

func newTestModel() Model {
	m := New(chat.NewClient(stubBackend{}, nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestEnterOnEmptyInputShowsAlert(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd, "no send command for empty input")
	assert.Equal(t, chat.EmptyInputAlert, m.alertLine)
	assert.False(t, m.isLoading)
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	m := newTestModel()
	m.textarea.SetValue("question")
	m.isLoading = true

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, "question", m.textarea.Value(), "input untouched while a question is in flight")
}

func TestEnterSubmitsQuestion(t *testing.T) {
	m := newTestModel()
	m.textarea.SetValue("hello")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)
	assert.Empty(t, m.textarea.Value())
}

func TestRenderMessageLiteral(t *testing.T) {
	m := newTestModel()

	out := m.renderMessage(domain.Message{
		Content: "<b>raw</b>",
		Sender:  domain.SenderBot,
		Sources: []domain.Source{{URL: "http://x", Title: "Doc"}},
	})

	assert.Contains(t, out, "<b>raw</b>")
	assert.Contains(t, out, "[1] Doc (http://x)")
}
