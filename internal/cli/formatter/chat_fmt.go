package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
)

// FormatChatMessage renders one transcript turn wrapped to width cells.
// A width of zero leaves the text unwrapped.
func FormatChatMessage(m domain.ChatMessage, width int) string {
	text := strings.TrimSpace(m.Text)
	if width > 4 {
		text = Wrap(text, width-2)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "  " + strings.TrimRight(l, " ")
	}
	return fmt.Sprintf("%s\n%s", RoleLabel(m.Role), strings.Join(lines, "\n"))
}

// FormatTranscript renders the visible turns of a history, separated by a
// blank line. System turns are never shown.
func FormatTranscript(history []domain.ChatMessage, width int) string {
	visible := domain.VisibleMessages(history)
	parts := make([]string, 0, len(visible))
	for _, m := range visible {
		parts = append(parts, FormatChatMessage(m, width))
	}
	return strings.Join(parts, "\n\n")
}

// ChatHelp is the footer listing the chat controls.
func ChatHelp() string {
	return Dim("enter: send  ·  pgup/pgdown: scroll  ·  esc/ctrl+c: quit")
}
