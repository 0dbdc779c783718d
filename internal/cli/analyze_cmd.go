package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "analyze <briefing>",
		Short: "Generate the market analysis of a briefing",
		Long: `Generate the market analysis of a briefing.

Analyzing again starts over: the briefing's plans, cached content ideas and
assistant chat are discarded first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if show {
				rec, err := app.Strategy.Analysis(ctx, b.ID)
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("briefing %s has no analysis yet: run `pauta analyze %s`", b.DisplayID(), b.DisplayID())
				}
				if err != nil {
					return err
				}
				return printAnalysis(cmd, rec)
			}

			if err := app.requireLLM(); err != nil {
				return err
			}
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Analyzing the market...")
			rec, err := app.Strategy.Analyze(ctx, b.ID)
			stop()
			if err != nil {
				return err
			}
			if err := printAnalysis(cmd, rec); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("\nNext: pauta plan %s", b.DisplayID())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the stored analysis without generating")

	return cmd
}

func printAnalysis(cmd *cobra.Command, rec *domain.AnalysisRecord) error {
	switch rec.Status {
	case domain.StatusError:
		return fmt.Errorf("analysis failed: %s", rec.Error)
	case domain.StatusLoading:
		fmt.Fprintln(cmd.OutOrStdout(), formatter.StatusPill(rec.Status))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnalysis(rec.Data))
	return nil
}
