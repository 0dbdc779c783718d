package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/pauta/internal/cli/formatter"
	"github.com/alexanderramin/pauta/internal/export"
	"github.com/alexanderramin/pauta/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		outDir   string
		withHTML bool
		stdout   bool
	)

	cmd := &cobra.Command{
		Use:   "export <briefing>",
		Short: "Write the analysis and latest plan as a Markdown (and HTML) report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := resolveBriefing(ctx, app, args[0])
			if err != nil {
				return err
			}

			report, err := app.Export.Report(ctx, b.ID)
			if errors.Is(err, service.ErrNoAnalysis) {
				return fmt.Errorf("%w: run `pauta analyze %s` first", err, b.DisplayID())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stdout {
				_, err := out.Write(export.Markdown(*report))
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", outDir, err)
			}

			mdPath := filepath.Join(outDir, export.FileName(report.GeneratedAt, "md"))
			if err := os.WriteFile(mdPath, export.Markdown(*report), 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintln(out, formatter.Success("Wrote "+mdPath))

			if withHTML {
				page, err := export.HTML(*report)
				if err != nil {
					return err
				}
				htmlPath := filepath.Join(outDir, export.FileName(report.GeneratedAt, "html"))
				if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintln(out, formatter.Success("Wrote "+htmlPath))
			}

			if report.Plan == nil {
				fmt.Fprintln(out, formatter.Warning("No plan yet; the report has the analysis only."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the report files")
	cmd.Flags().BoolVar(&withHTML, "html", false, "Also write an HTML page")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the Markdown report instead of writing files")
	cmd.MarkFlagsMutuallyExclusive("stdout", "html")

	return cmd
}
