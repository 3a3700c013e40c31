package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/timvw/pitch-check/internal/controller"
	"github.com/timvw/pitch-check/internal/model"
	"github.com/timvw/pitch-check/internal/ui"
)

var (
	flagTheme   string
	flagLogFile string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal UI to draft and evaluate proposals",
	Long: `Launch an interactive terminal UI. Type or load an example proposal,
press ctrl+s to evaluate it and browse the result.

Logs are discarded unless --log-file is given, so they never draw over
the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel() // cancels an in-flight evaluation when the TUI exits

		a, err := newApp(ctx, cmd, appOptions{fileLogging: true, logFile: flagLogFile})
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		ctrl := controller.New(ctx, a.client, controller.WithTimeout(a.cfg.TimeoutDuration))
		tui := &ui.TUI{
			Controller: ctrl,
			Examples:   model.Examples(),
			Theme:      ui.ThemeByName(flagTheme),
		}
		return tui.Run(ctx)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	tuiCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write JSON logs to this file")
	rootCmd.AddCommand(tuiCmd)
}
