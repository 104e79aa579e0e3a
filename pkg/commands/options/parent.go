package options

import (
	"github.com/spf13/cobra"
)

// ParentOptions
type ParentOptions struct {
	Parent string
	Root   bool
}

func AddParentArg(cmd *cobra.Command, o *ParentOptions) {
	cmd.Flags().StringVarP(&o.Parent, "parent", "p", "",
		"Number of the parent task, e.g. 4 or 1.2.4.")
}

func AddRootArg(cmd *cobra.Command, o *ParentOptions) {
	cmd.Flags().BoolVar(&o.Root, "root", false,
		"Make the task a root task.")
}

// ParentID returns the parsed parent, or nil when none was given.
func (o *ParentOptions) ParentID() (*int64, error) {
	if o.Parent == "" {
		return nil, nil
	}
	id, err := ParseID(o.Parent)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
