package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
)

func addMove(topLevel *cobra.Command, e *env) {
	po := &options.ParentOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "move <number>",
		Aliases: []string{"mv"},
		Short:   "Move a task under another task, or make it a root",
		Example: `
teal move 7 --parent 3
teal move 1.3.7 --root
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := runMove(cmd, e, args[0], po)
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), describe(err))
			}
			if oo.JSON {
				return oo.WriteJSON(cmd.OutOrStdout(), t)
			}
			where := "to the top level"
			if p, ok := t.ParentID(); ok {
				where = fmt.Sprintf("under task %d", p)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Moved task %d %s\n", t.ID, where)
			return err
		},
	}
	options.AddParentArg(cmd, po)
	options.AddRootArg(cmd, po)
	options.AddOutputArg(cmd, oo)
	cmd.MarkFlagsMutuallyExclusive("parent", "root")
	cmd.MarkFlagsOneRequired("parent", "root")

	topLevel.AddCommand(cmd)
}

func runMove(cmd *cobra.Command, e *env, arg string, po *options.ParentOptions) (model.Task, error) {
	id, err := options.ParseID(arg)
	if err != nil {
		return model.Task{}, err
	}
	parent, err := po.ParentID()
	if err != nil {
		return model.Task{}, err
	}
	if parent == nil && !po.Root {
		return model.Task{}, errors.New("give --parent or --root")
	}

	db, _, err := e.open()
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	return db.Move(cmd.Context(), id, parent)
}
