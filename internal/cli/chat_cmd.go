package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat <briefing>",
		Short: "Talk to the strategy assistant about the latest plan",
		Long: `Talk to the strategy assistant about the briefing's analysis and latest
plan. The conversation is stored and resumes where it stopped.

Messages can also be piped, one per line:
  printf 'Qual o foco da semana 2?\n' | pauta chat 3f9c2a1b`,
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

			history, err := app.Chat.History(ctx, b.ID)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				return fmt.Errorf("briefing %s has no plan to discuss yet: run `pauta plan %s` first", b.DisplayID(), b.DisplayID())
			}

			if !app.interactive() {
				return runPlainChat(ctx, app.Chat, b, history, newScannerReader(cmd.InOrStdin()), cmd.OutOrStdout())
			}
			if plain {
				rl, err := newTerminalReader(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return runPlainChat(ctx, app.Chat, b, history, rl, cmd.OutOrStdout())
			}

			p := tea.NewProgram(
				newChatModel(ctx, app.Chat, b, history),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Line-by-line chat instead of the full-screen view")

	return cmd
}
