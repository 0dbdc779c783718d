package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/spf13/cobra"
)

func newIdeasCmd(app *App) *cobra.Command {
	var date, month string

	cmd := &cobra.Command{
		Use:   "ideas <briefing>",
		Short: "Content ideas for commemorative dates",
		Long: `Content ideas for one commemorative date or for every date of a month.

Ideas are cached per briefing and date; failed dates are generated again on
the next run.`,
		Example: `  pauta ideas 3f9c2a1b --date 2024-11-20
  pauta ideas 3f9c2a1b --month 2024-11`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.requireLLM(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if date != "" {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Thinking of ideas for "+date+"...")
				rec, err := app.Ideas.HolidayIdeas(ctx, b.ID, date)
				stop()
				if errors.Is(err, service.ErrNoHoliday) {
					return fmt.Errorf("%w: see `pauta holidays --month %s`", err, date[:min(len(date), 7)])
				}
				if rec != nil {
					fmt.Fprint(out, formatter.FormatIdeas([]*domain.IdeaRecord{rec}))
				}
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), app.interactive(), "Thinking of ideas for "+month+"...")
			records, err := app.Ideas.MonthIdeas(ctx, b.ID, month)
			stop()
			if records != nil {
				fmt.Fprint(out, formatter.FormatIdeas(records))
			}
			if err != nil && records != nil {
				return fmt.Errorf("some dates failed and will be retried next run: %w", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Commemorative date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&month, "month", "m", "", "Every date of a month, as YYYY-MM")
	cmd.MarkFlagsMutuallyExclusive("date", "month")
	cmd.MarkFlagsOneRequired("date", "month")

	return cmd
}
