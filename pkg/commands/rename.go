package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
)

func addRename(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "rename <number> <description>",
		Short: "Change the description of a task",
		Example: `
teal rename 4 water the ferns
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := runRename(cmd, e, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), describe(err))
			}
			if oo.JSON {
				return oo.WriteJSON(cmd.OutOrStdout(), t)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s\n", t)
			return err
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runRename(cmd *cobra.Command, e *env, arg, description string) (model.Task, error) {
	id, err := options.ParseID(arg)
	if err != nil {
		return model.Task{}, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Task{}, errEmptyDescription
	}

	db, _, err := e.open()
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	return db.Rename(cmd.Context(), id, description)
}
