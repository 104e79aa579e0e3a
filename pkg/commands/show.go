package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/analysis"
	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/render"
	"github.com/kraitsura/teal/pkg/tree"
)

// showJSON is the --json form of teal show.
type showJSON struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Complete    bool              `json:"complete"`
	Parent      *int64            `json:"parent,omitempty"`
	Progress    analysis.Progress `json:"progress"`
	Subtree     []elementJSON     `json:"subtree"`
}

func addShow(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show a task and everything below it",
		Example: `
teal show 4
teal show 1.2.4 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, e, args[0], oo)
			return oo.HandleError(cmd.OutOrStdout(), describe(err))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, e *env, arg string, oo *options.OutputOptions) error {
	ctx := cmd.Context()
	id, err := options.ParseID(arg)
	if err != nil {
		return err
	}

	db, _, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	task, err := db.GetTask(ctx, id)
	if err != nil {
		return err
	}
	sub, err := db.Subtree(ctx, id)
	if err != nil {
		return err
	}
	progress := analysis.SubtreeProgress(sub)

	out := cmd.OutOrStdout()
	if oo.JSON {
		return oo.WriteJSON(out, showJSON{
			ID:          task.ID,
			Description: task.Description,
			Complete:    task.Complete,
			Parent:      task.Parent,
			Progress:    progress,
			Subtree:     toJSON(tree.Flatten(sub)),
		})
	}
	return writeShow(out, task.Description, sub, progress)
}

func writeShow(out io.Writer, description string, sub *tree.Tree, p analysis.Progress) error {
	styled := options.IsTerminal(out)
	text, err := render.Markdown(description, options.Width(out), styled)
	if err != nil {
		text = description
	}
	fmt.Fprintln(out, text)
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Outline(tree.Lines(sub)))
	fmt.Fprintln(out)
	_, err = fmt.Fprintf(out, "%d/%d done (%.0f%%, %s)\n", p.Done, p.Total, p.Percent, p.Level)
	return err
}
