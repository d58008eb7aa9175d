package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewSessionID generates the per-page-load session identifier: a creation
// timestamp plus a random suffix. Uniqueness is best-effort; the backend
// only uses it to correlate a conversation.
func NewSessionID() string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
