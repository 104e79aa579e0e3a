package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/export"
	"github.com/kraitsura/teal/pkg/loader"
	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/store"
	"github.com/kraitsura/teal/pkg/tree"
)

const formatJSONL = "jsonl"

type exportOptions struct {
	Format string
	Output string
	Root   string
}

func addExport(topLevel *cobra.Command, e *env) {
	eo := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tasks to a file: outline image, markdown, YAML or JSONL records",
		Example: `
teal export --output tasks.svg
teal export --output plan.png --id 4
teal export --format md
teal export --output backup.jsonl
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return describe(runExport(cmd, e, eo))
		},
	}
	cmd.Flags().StringVarP(&eo.Format, "format", "f", "",
		"svg, png, md, yaml or jsonl (default: from the output extension).")
	cmd.Flags().StringVarP(&eo.Output, "output", "o", "",
		"File to write. md, yaml and jsonl go to stdout when omitted.")
	cmd.Flags().StringVar(&eo.Root, "id", "",
		"Only export the subtree below this task.")

	topLevel.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, e *env, eo *exportOptions) error {
	ctx := cmd.Context()
	format := strings.ToLower(eo.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(eo.Output)), ".")
	}
	if format == "" {
		return errors.New("give --format or an --output file with an extension")
	}

	db, _, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	var root int64
	if eo.Root != "" {
		if root, err = options.ParseID(eo.Root); err != nil {
			return err
		}
	}

	if format == formatJSONL {
		tasks, err := exportRecords(cmd, db, root)
		if err != nil {
			return err
		}
		if eo.Output == "" {
			return loader.WriteTasks(cmd.OutOrStdout(), tasks)
		}
		if err := loader.SaveTasks(eo.Output, tasks); err != nil {
			return err
		}
		return reportExport(cmd, len(tasks), eo.Output)
	}

	title := "teal"
	var elems []tree.Element
	if root != 0 {
		sub, err := db.Subtree(ctx, root)
		if err != nil {
			return err
		}
		title = sub.Description
		elems = tree.Flatten(sub)
	} else {
		roots, err := db.ListTasks(ctx, false)
		if err != nil {
			return err
		}
		trees, err := fetchTrees(ctx, db, roots)
		if err != nil {
			return err
		}
		for _, t := range trees {
			elems = append(elems, tree.Flatten(t)...)
		}
	}

	if eo.Output == "" {
		switch format {
		case export.FormatMarkdown, "markdown":
			return export.WriteMarkdown(cmd.OutOrStdout(), title, elems)
		case export.FormatYAML, "yml":
			return export.WriteYAML(cmd.OutOrStdout(), elems)
		}
		return fmt.Errorf("%s output needs --output", format)
	}
	if err := export.SaveOutline(export.OutlineOptions{
		Path:     eo.Output,
		Format:   format,
		Title:    title,
		Elements: elems,
	}); err != nil {
		return err
	}
	return reportExport(cmd, len(elems), eo.Output)
}

func exportRecords(cmd *cobra.Command, db *store.DB, root int64) ([]model.Task, error) {
	if root == 0 {
		return db.ListTasks(cmd.Context(), true)
	}
	tasks, err := db.ListSubtasks(cmd.Context(), root)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: %d", store.ErrTaskNotFound, root)
	}
	// The exported subtree must stand on its own when imported again.
	tasks[0] = tasks[0].WithoutParent()
	return tasks, nil
}

func reportExport(cmd *cobra.Command, n int, path string) error {
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", n, path)
	return err
}
