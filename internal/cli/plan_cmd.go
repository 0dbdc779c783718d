package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		month string
		show  bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "plan <briefing>",
		Short: "Generate the weekly marketing plan for a month",
		Long: `Generate the weekly marketing plan for a month, built on the briefing's
market analysis and the commemorative dates of its region.

Generating a plan also starts a new assistant conversation about it.`,
		Example: `  pauta plan 3f9c2a1b
  pauta plan 3f9c2a1b --month 2024-12
  pauta plan 3f9c2a1b --show`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if month != "" {
				if _, _, err := holiday.ParseMonthKey(month); err != nil {
					return err
				}
			}

			if list {
				plans, err := app.Strategy.Plans(ctx, b.ID)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatPlanList(plans))
				return nil
			}

			if show {
				rec, err := app.Strategy.Plan(ctx, b.ID, month)
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no plan stored for briefing %s: run `pauta plan %s`", b.DisplayID(), b.DisplayID())
				}
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatPlan(rec))
				return nil
			}

			if err := app.requireLLM(); err != nil {
				return err
			}
			if month == "" {
				month = domain.MonthsToDisplay(app.now(), 1)[0]
			}
			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Planning "+month+"...")
			rec, err := app.Strategy.GeneratePlan(ctx, b.ID, month)
			stop()
			if errors.Is(err, service.ErrNoAnalysis) {
				return fmt.Errorf("%w: run `pauta analyze %s` first", err, b.DisplayID())
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, formatter.FormatPlan(rec))
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("\nNext: pauta ideas %s --month %s, or pauta chat %s", b.DisplayID(), rec.MonthKey, b.DisplayID())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to plan as YYYY-MM (default current month)")
	cmd.Flags().BoolVar(&show, "show", false, "Print the stored plan (latest when --month is not given)")
	cmd.Flags().BoolVar(&list, "list", false, "List the stored plans")
	cmd.MarkFlagsMutuallyExclusive("show", "list")

	return cmd
}
