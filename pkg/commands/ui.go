package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive tracker",
		Example: `
shelf ui
shelf
`,
		ValidArgs: []string{},
		Args:      cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, e)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, e *env) error {
	i := ui.UI{
		Config:     e.settings,
		Tick:       e.settings.Tick,
		Scrollback: e.settings.Scrollback,
		Logger:     e.log,
	}
	return i.Do(cmd.Context())
}
