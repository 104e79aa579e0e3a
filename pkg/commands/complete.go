package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
)

func addComplete(topLevel *cobra.Command, e *env) {
	topLevel.AddCommand(completionCommand(e, true, &cobra.Command{
		Use:     "complete <number>...",
		Aliases: []string{"done"},
		Short:   "Mark tasks as done",
		Example: `
teal complete 4
teal done 1.2 3,5
`,
	}))
}

func addUncomplete(topLevel *cobra.Command, e *env) {
	topLevel.AddCommand(completionCommand(e, false, &cobra.Command{
		Use:     "uncomplete <number>...",
		Aliases: []string{"undo"},
		Short:   "Mark tasks as not done",
		Example: `
teal uncomplete 4
`,
	}))
}

// completionCommand fills in the flags and behaviour shared by complete and
// uncomplete.
func completionCommand(e *env, complete bool, cmd *cobra.Command) *cobra.Command {
	oo := &options.OutputOptions{}

	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := runSetCompletion(cmd, e, args, complete, oo)
		return oo.HandleError(cmd.OutOrStdout(), describe(err))
	}
	options.AddOutputArg(cmd, oo)
	return cmd
}

func runSetCompletion(cmd *cobra.Command, e *env, args []string, complete bool, oo *options.OutputOptions) error {
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

	updated := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		t, err := db.SetCompletion(ctx, id, complete)
		if err != nil {
			return err
		}
		updated = append(updated, t)
	}

	out := cmd.OutOrStdout()
	if oo.JSON {
		return oo.WriteJSON(out, updated)
	}
	for _, t := range updated {
		if _, err := fmt.Fprintf(out, "%s: %s\n", t.Status(), t); err != nil {
			return err
		}
	}
	return nil
}
