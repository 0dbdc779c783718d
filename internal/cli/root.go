package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Briefings service.BriefingService
	Strategy  service.StrategyService
	Ideas     service.IdeaService
	Chat      service.ChatService
	Export    service.ExportService
	Calendar  *holiday.Calendar

	// LLMError, when set, is why no model can be reached. Commands that
	// generate content fail with it before touching any state.
	LLMError error

	// IsInteractive reports whether stdin is a terminal. Forms, spinners and
	// the chat TUI are used only when it returns true.
	IsInteractive func() bool

	// Now overrides the clock for default years and months.
	Now func() time.Time
}

// NewRootCmd creates the top-level "pauta" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pauta",
		Short: "Marketing plans anchored to the Brazilian commemorative calendar",
		Long: `pauta turns a short company briefing into a market analysis, a weekly
marketing plan for a month and content ideas for each commemorative date,
using the national calendar plus the holidays of the company's state.`,
		SilenceUsage: true,
	}

	// Read by main before Execute; registered here so cobra accepts them.
	root.PersistentFlags().String("env-file", ".env", "Load environment variables from this file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log service and model calls to stderr")

	root.AddCommand(
		newRegionsCmd(app),
		newHolidaysCmd(app),
		newBriefingCmd(app),
		newAnalyzeCmd(app),
		newPlanCmd(app),
		newIdeasCmd(app),
		newChatCmd(app),
		newExportCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) calendar() *holiday.Calendar {
	if a.Calendar != nil {
		return a.Calendar
	}
	return holiday.Default()
}

// requireLLM fails with a configuration hint when generation is unavailable.
func (a *App) requireLLM() error {
	if a.LLMError == nil {
		return nil
	}
	return fmt.Errorf("%w\nhint: export PAUTA_LLM_API_KEY, or PAUTA_LLM_PROVIDER=ollama for a local model (a .env file works too)", a.LLMError)
}

// resolveBriefing looks a briefing up by full ID or unique ID prefix.
func resolveBriefing(ctx context.Context, app *App, input string) (*domain.Briefing, error) {
	if input == "" {
		return nil, fmt.Errorf("briefing ID is required")
	}
	return app.Briefings.Resolve(ctx, input)
}
