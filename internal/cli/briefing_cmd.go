package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/repository"
	"github.com/spf13/cobra"
)

func newBriefingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "briefing",
		Aliases: []string{"b"},
		Short:   "Manage company briefings",
	}

	cmd.AddCommand(
		newBriefingNewCmd(app),
		newBriefingListCmd(app),
		newBriefingShowCmd(app),
		newBriefingDeleteCmd(app),
	)

	return cmd
}

func newBriefingNewCmd(app *App) *cobra.Command {
	var (
		description string
		region      regionFlag
		model       string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a briefing (opens a form on a terminal)",
		Example: `  pauta briefing new
  pauta briefing new -d "Loja de roupas femininas com foco em moda praia" -r RJ`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := briefingInput{Description: description, Region: region.code, Model: model}

			if in.Description == "" {
				if !app.interactive() {
					return fmt.Errorf("--description is required when not running in a terminal")
				}
				if err := briefingForm(&in).Run(); err != nil {
					return err
				}
			}

			b, err := app.Briefings.Create(cmd.Context(), in.Description, in.Region, in.Model)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Created briefing %s", formatter.Bold(b.DisplayID()))))
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Next: pauta analyze %s", b.DisplayID())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Company description (at least 10 characters)")
	addRegionFlag(cmd.Flags(), &region, "State code for regional holidays (blank for national only)")
	cmd.Flags().StringVar(&model, "model", "", "Model used for this briefing (default from PAUTA_LLM_MODEL)")

	return cmd
}

func newBriefingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List briefings, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			briefings, err := app.Briefings.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBriefingList(briefings))
			return nil
		},
	}
}

func newBriefingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <briefing>",
		Short: "Show a briefing and the state of its analysis and plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}

			analysis, err := app.Strategy.Analysis(ctx, b.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			plans, err := app.Strategy.Plans(ctx, b.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBriefingDetail(formatter.BriefingOverview{
				Briefing: b,
				Analysis: analysis,
				Plans:    plans,
			}))
			return nil
		},
	}
}

func newBriefingDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <briefing>",
		Aliases: []string{"rm"},
		Short:   "Delete a briefing with its analysis, plans, ideas and chat",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --yes when not running in a terminal")
				}
				if err := confirmForm(fmt.Sprintf("Delete briefing %s?", b.DisplayID()), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Briefings.Delete(ctx, b.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted briefing %s", b.DisplayID())))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
