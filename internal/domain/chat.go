package domain

import "time"

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message represents a single transcript entry. Messages are immutable
// after creation; the transcript only ever grows.
type Message struct {
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Sources   []Source  `json:"sources,omitempty"`
	IsError   bool      `json:"is_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Source represents a citation attached to a bot answer.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// AskRequest is the request body for POST /api/ask.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// AskResponse is the successful response from POST /api/ask.
type AskResponse struct {
	Question  string   `json:"question,omitempty"`
	Answer    string   `json:"answer"`
	Sources   []Source `json:"sources,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
}

// Stats represents knowledge base statistics from GET /api/stats.
// The backend may send more fields; only the chunk count matters here.
type Stats struct {
	TotalChunks int `json:"total_chunks"`
}

// Health is the response from GET /api/health.
type Health struct {
	Status string `json:"status"`
	Stats  *Stats `json:"stats,omitempty"`
	Error  string `json:"error,omitempty"`
}
