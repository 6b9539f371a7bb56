package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
shelf add compartment Garage
shelf add container "North Wall" --compartment 0 --tag 1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntity(cmd, e, inventory.KindTag, "", "")
	addEntity(cmd, e, inventory.KindCompartment, "", "")
	addEntity(cmd, e, inventory.KindContainer, "compartment", "Id of the compartment that holds the container.")
	addEntity(cmd, e, inventory.KindItem, "container", "Id of the container that holds the item.")

	topLevel.AddCommand(cmd)
}

// addEntity registers `add <kind> <name...>`. Kinds with a parent get a
// required parent flag and repeatable --tag ids.
func addEntity(parent *cobra.Command, e *env, kind inventory.Kind, parentFlag, parentUsage string) {
	oo := &options.OutputOptions{}
	po := &options.ParentOptions{}
	to := &options.TagOptions{}

	cmd := &cobra.Command{
		Use:   string(kind) + " <name>",
		Short: "add a " + string(kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			err := runAdd(cmd, e, kind, args, oo, po, to, parentFlag != "")
			return oo.HandleError(err)
		},
	}
	switch kind {
	case inventory.KindContainer:
		cmd.Example = `
shelf add container "North Wall" --compartment 0
shelf add container Toolbox --compartment 0 --tag 0,2
`
	case inventory.KindItem:
		cmd.Example = `
shelf add item Drill --container 3
shelf add item "Tape measure" --container 3 -t 0
`
	}

	if parentFlag != "" {
		options.AddParentArg(cmd, po, parentFlag, parentUsage)
		options.AddTagArgs(cmd, to)
	}
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, e *env, kind inventory.Kind, args []string, oo *options.OutputOptions, po *options.ParentOptions, to *options.TagOptions, hasParent bool) error {
	a := add.Add{
		Kind: kind,
		Name: strings.Join(args, " "),
		JSON: oo.JSON,
		Out:  cmd.OutOrStdout(),
	}
	if hasParent {
		var err error
		if a.Parent, err = po.ID(); err != nil {
			return err
		}
		if a.Tags, err = to.IDs(); err != nil {
			return err
		}
	}

	p, err := e.open()
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()
	a.Persistence = p

	if err := a.Do(cmd.Context()); err != nil {
		e.log.Warn("add failed", "kind", kind, "name", a.Name, "error", err)
		return err
	}
	e.log.Info("added", "kind", kind, "name", a.Name)
	return nil
}
