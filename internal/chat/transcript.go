package chat

import (
	"sync"
	"time"

	"github.com/eoralab/casechat/internal/domain"
)

// Transcript is the ordered, append-only sequence of chat messages.
// Entries are never edited, reordered or removed; the transcript lives as
// long as the client that owns it. Growth is deliberately unbounded.
type Transcript struct {
	mu       sync.Mutex
	messages []domain.Message
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg domain.Message) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the transcript; mutating the returned slice
// does not affect internal state.
func (t *Transcript) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
