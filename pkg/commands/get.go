package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/runner/get"
)

func addGet(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	io := &options.IDOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "print every compartment, container and item",
		Example: `
shelf get
shelf get --show-id
shelf get --json --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			return oo.HandleError(runGet(cmd, e, get.Get{
				ShowID: io.ShowID,
				JSON:   oo.JSON,
				Watch:  wo.Watch,
			}))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddWatchArg(cmd, wo)

	topLevel.AddCommand(cmd)
}

func addTags(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "print the tag table",
		Example: `
shelf tags
shelf tags --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			return oo.HandleError(runGet(cmd, e, get.Get{
				JSON: oo.JSON,
				Tags: true,
			}))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, e *env, g get.Get) error {
	p, err := e.open()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	g.Persistence = p
	g.Out = cmd.OutOrStdout()
	g.Logger = e.log
	return g.Do(cmd.Context())
}

func addPath(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "print where the inventory document lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.open()
			if err != nil {
				return err
			}
			defer func() { _ = p.Close() }()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Path())
			return err
		},
	}

	topLevel.AddCommand(cmd)
}
