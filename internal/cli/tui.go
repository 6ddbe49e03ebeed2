package cli

import (
	"github.com/spf13/cobra"

	"github.com/tOgg1/tick/internal/logging"
	"github.com/tOgg1/tick/internal/tui"
)

// runProgram starts the interactive screen. Tests replace it.
var runProgram = tui.Run

func newTUICmd(opts *rootOptions) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Open the interactive task screen",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if theme != "" {
				opts.theme = theme
			}
			return runTUI(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "initial theme: light|dark (default from config)")
	return cmd
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	return withApp(contextOf(cmd), opts, modeInteractive, func(a *app) error {
		theme := a.cfg.TUI.Theme
		if opts.theme != "" {
			theme = opts.theme
		}
		return runProgram(tui.Config{
			Store:  a.store,
			Writer: a.writer,
			Theme:  theme,
			Logger: logging.Component("tui"),
		})
	})
}
