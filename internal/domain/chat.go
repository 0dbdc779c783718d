package domain

import "time"

// ChatMessage is one turn of the assistant transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"-"`
}

// VisibleMessages drops system turns, which carry the assistant's context and
// are never shown.
func VisibleMessages(history []ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}
