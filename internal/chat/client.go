// Package chat holds the client-side conversation state: the session
// identifier, the transcript and the single-in-flight-question gate.
// Rendering is a separate projection of this state (internal/render).
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/eoralab/casechat/internal/domain"
	"go.uber.org/zap"
)

// UI strings shown for the stats line and ask failures.
const (
	StatsFormat      = "База знаний: %d фрагментов из кейсов EORA"
	StatsUnavailable = "База знаний недоступна"
	AskErrorFormat   = "Ошибка: %s"
	SendErrorFormat  = "Произошла ошибка при отправке запроса: %s"
	EmptyInputAlert  = "Пожалуйста, введите вопрос"
)

// Backend is the slice of the assistant API the chat client needs.
type Backend interface {
	Ask(ctx context.Context, question, sessionID string) (*domain.AskResponse, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// Client owns one conversation: a session identifier generated at creation,
// an append-only transcript and the loading gate. Each Client is an
// independent chat instance; nothing is shared between instances.
type Client struct {
	backend   Backend
	logger    *zap.Logger
	sessionID string

	mu      sync.Mutex
	loading bool

	transcript Transcript
}

// NewClient creates a chat client with a fresh session identifier.
func NewClient(backend Backend, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		backend:   backend,
		logger:    logger,
		sessionID: NewSessionID(),
	}
}

// SessionID returns the session identifier. It never changes for the
// lifetime of the client.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Messages returns a snapshot of the transcript.
func (c *Client) Messages() []domain.Message {
	return c.transcript.Messages()
}

// Loading reports whether a question is currently in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadStats reads knowledge base statistics and returns the line to show.
// Failures are absorbed: any error yields the static fallback text.
func (c *Client) LoadStats(ctx context.Context) string {
	stats, err := c.backend.Stats(ctx)
	if err != nil {
		c.logger.Warn("stats unavailable", zap.Error(err))
		return StatsUnavailable
	}
	return fmt.Sprintf(StatsFormat, stats.TotalChunks)
}

// SendQuestion submits the question and appends the outcome to the
// transcript. Exactly one user message and one bot message are appended
// for every accepted call; ask failures become error-flagged bot messages
// rather than returned errors. Rejected calls (empty input, question
// already in flight) append nothing and perform no network call.
func (c *Client) SendQuestion(ctx context.Context, raw string) error {
	question := strings.TrimSpace(raw)
	if question == "" {
		return domain.ErrEmptyQuestion
	}

	if !c.enterSending() {
		return domain.ErrBusy
	}
	defer c.leaveSending()

	c.transcript.Append(domain.Message{
		Content: question,
		Sender:  domain.SenderUser,
	})

	resp, err := c.backend.Ask(ctx, question, c.sessionID)
	if err != nil {
		var backendErr *domain.BackendError
		if errors.As(err, &backendErr) {
			c.transcript.Append(domain.Message{
				Content: fmt.Sprintf(AskErrorFormat, backendErr.Message),
				Sender:  domain.SenderBot,
				IsError: true,
			})
		} else {
			c.transcript.Append(domain.Message{
				Content: fmt.Sprintf(SendErrorFormat, err.Error()),
				Sender:  domain.SenderBot,
				IsError: true,
			})
		}
		return nil
	}

	c.transcript.Append(domain.Message{
		Content: resp.Answer,
		Sender:  domain.SenderBot,
		Sources: resp.Sources,
	})
	return nil
}

// enterSending flips Idle -> Sending; reports false when already Sending.
func (c *Client) enterSending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

func (c *Client) leaveSending() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}
