package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/store"
)

var errEmptyDescription = errors.New("task description cannot be empty")

func addAdd(topLevel *cobra.Command, e *env) {
	po := &options.ParentOptions{}
	io := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "add <description>",
		Aliases: []string{"create"},
		Short:   "Add a task",
		Example: `
teal add water the plants
teal add --parent 3 buy soil
teal add -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := runAdd(cmd, e, strings.Join(args, " "), po, io)
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), describe(err))
			}
			if oo.JSON {
				return oo.WriteJSON(cmd.OutOrStdout(), t)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Description)
			return err
		},
	}
	options.AddParentArg(cmd, po)
	options.InteractiveArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, e *env, description string, po *options.ParentOptions, io *options.InteractiveOptions) (model.Task, error) {
	ctx := cmd.Context()
	parent, err := po.ParentID()
	if err != nil {
		return model.Task{}, err
	}

	db, _, err := e.open()
	if err != nil {
		return model.Task{}, err
	}
	defer db.Close()

	if io.Interactive {
		description, parent, err = askTask(ctx, db, description, parent)
		if err != nil {
			return model.Task{}, err
		}
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return model.Task{}, errEmptyDescription
	}
	return db.AddTask(ctx, description, parent)
}

// askTask fills in the description and parent with a form, starting from
// whatever was given on the command line.
func askTask(ctx context.Context, db *store.DB, description string, parent *int64) (string, *int64, error) {
	tasks, err := db.ListTasks(ctx, true)
	if err != nil {
		return "", nil, err
	}

	var parentID int64
	if parent != nil {
		parentID = *parent
	}
	choices := []huh.Option[int64]{huh.NewOption("None, make it a root task", int64(0))}
	for _, t := range tasks {
		choices = append(choices, huh.NewOption(t.String(), t.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Value(&description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errEmptyDescription
					}
					return nil
				}),
			huh.NewSelect[int64]().
				Title("Parent").
				Options(choices...).
				Value(&parentID),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return "", nil, err
	}

	if parentID == 0 {
		return description, nil, nil
	}
	return description, model.Ref(parentID), nil
}
