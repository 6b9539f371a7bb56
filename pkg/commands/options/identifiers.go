package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/command"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of every container and item.")
}

// ParentOptions selects the compartment or container a new entity goes in.
type ParentOptions struct {
	Flag  string
	Value string
}

// AddParentArg registers a required --<flag> id on cmd.
func AddParentArg(cmd *cobra.Command, o *ParentOptions, flag, usage string) {
	o.Flag = flag
	cmd.Flags().StringVar(&o.Value, flag, "", usage)
	_ = cmd.MarkFlagRequired(flag)
}

// ID parses the parent id.
func (o *ParentOptions) ID() (uint32, error) {
	return command.ParseID(o.Flag, o.Value)
}

// TagOptions collects repeated --tag ids.
type TagOptions struct {
	Tags []string
}

func AddTagArgs(cmd *cobra.Command, o *TagOptions) {
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag id to attach, repeat or comma separate for more.")
}

// IDs parses every tag id, reporting the first invalid one.
func (o *TagOptions) IDs() ([]uint32, error) {
	ids := make([]uint32, 0, len(o.Tags))
	for _, t := range o.Tags {
		id, err := command.ParseID("tag", t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
