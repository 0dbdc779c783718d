package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pautaHuhTheme returns a huh theme using the formatter palette.
func pautaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// briefingInput holds the fields collected by the briefing form.
type briefingInput struct {
	Description string
	Region      string
	Model       string
}

// briefingForm returns a themed form for a new briefing. Fields already set
// in in are used as initial values.
func briefingForm(in *briefingInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Describe the company").
				Description("What it sells, to whom and where. The more context, the better the analysis.").
				Placeholder("Padaria artesanal de fermentação natural no centro de Campinas...").
				CharLimit(2000).
				Value(&in.Description).
				Validate(validateDescription),
			huh.NewSelect[string]().
				Title("Region").
				Description("State holidays are added to the national calendar.").
				Options(regionOptions()...).
				Height(10).
				Value(&in.Region),
			huh.NewInput().
				Title("Model (blank for default)").
				Placeholder("gpt-4o-mini").
				Value(&in.Model),
		),
	).WithTheme(pautaHuhTheme()).WithShowHelp(false)
}

// regionOptions lists every federative unit after a national-only choice.
func regionOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Regions)+1)
	opts = append(opts, huh.NewOption("National only", ""))
	for _, r := range domain.Regions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", r.Code, r.Name), r.Code))
	}
	return opts
}

func validateDescription(s string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < domain.MinDescriptionLength {
		return fmt.Errorf("at least %d characters (%d so far)", domain.MinDescriptionLength, n)
	}
	return nil
}

// confirmForm returns a themed yes/no confirmation.
func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithTheme(pautaHuhTheme()).WithShowHelp(false)
}
