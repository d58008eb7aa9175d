// Package render projects the transcript to plain text. Message content is
// always passed through literally and never parsed as markup, no matter
// where it came from.
package render

import (
	"fmt"
	"strings"

	"github.com/eoralab/casechat/internal/domain"
)

const (
	userLabel    = "Вы"
	botLabel     = "Ассистент"
	sourcesLabel = "Источники:"
)

// Message renders one transcript entry, including its citation block.
func Message(msg domain.Message) string {
	var b strings.Builder

	label := botLabel
	if msg.Sender == domain.SenderUser {
		label = userLabel
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(msg.Content)

	if len(msg.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(sourcesLabel)
		for i, src := range msg.Sources {
			b.WriteString(fmt.Sprintf("\n[%d] %s (%s)", i+1, src.Title, src.URL))
		}
	}

	return b.String()
}

// Transcript renders the full message sequence, one block per message.
func Transcript(msgs []domain.Message) string {
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, Message(msg))
	}
	return strings.Join(blocks, "\n\n")
}
