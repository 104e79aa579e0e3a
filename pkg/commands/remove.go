package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/render"
	"github.com/kraitsura/teal/pkg/tree"
)

func addRemove(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}
	var raw bool

	cmd := &cobra.Command{
		Use:     "remove <number>...",
		Aliases: []string{"del", "rm"},
		Short:   "Remove tasks together with their subtasks",
		Example: `
teal remove 4
teal del 1.2.4 7,9
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRemove(cmd, e, args, raw, oo)
			return oo.HandleError(cmd.OutOrStdout(), describe(err))
		},
	}
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Tab-separated output without headers, borders or colour.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runRemove(cmd *cobra.Command, e *env, args []string, raw bool, oo *options.OutputOptions) error {
	ctx := cmd.Context()
	ids, err := options.ParseIDs(args)
	if err != nil {
		return err
	}

	db, _, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, id := range ids {
		if _, err := db.GetTask(ctx, id); err != nil {
			return err
		}
	}

	var removed []model.Task
	var elems []tree.Element
	for _, id := range ids {
		// Earlier ids may already have taken this one with them.
		rows, err := db.RemoveTask(ctx, id)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}
		removed = append(removed, rows...)
		rows[0] = rows[0].WithoutParent()
		flat, err := tree.FlattenTasks(rows)
		if err != nil {
			return err
		}
		elems = append(elems, flat...)
	}

	out := cmd.OutOrStdout()
	if oo.JSON {
		return oo.WriteJSON(out, removed)
	}
	if !raw {
		fmt.Fprintf(out, "Deleted %d tasks:\n", len(removed))
	}
	_, err = fmt.Fprintln(out, render.Elements(elems, raw))
	return err
}
