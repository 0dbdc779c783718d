package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for a generation status.
func StatusPill(status domain.GenerationStatus) string {
	switch status {
	case domain.StatusSuccess:
		return StyleGreen.Render("● Ready")
	case domain.StatusLoading:
		return StyleYellow.Render("◌ Generating")
	case domain.StatusError:
		return StyleRed.Render("✖ Failed")
	default:
		return StyleDim.Render("○ None")
	}
}

// RoleLabel returns the styled speaker label of a chat turn.
func RoleLabel(role domain.ChatRole) string {
	switch role {
	case domain.RoleUser:
		return StyleBlue.Bold(true).Render("You")
	case domain.RoleAssistant:
		return StylePurple.Bold(true).Render("Assistant")
	default:
		return StyleDim.Render(string(role))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success renders a green confirmation line.
func Success(text string) string {
	return StyleGreen.Render("✔ ") + text
}

// Warning renders a yellow warning line.
func Warning(text string) string {
	return StyleYellow.Render("! ") + text
}
