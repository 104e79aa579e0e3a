package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/analysis"
	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/loader"
)

func addImport(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Add the tasks from a JSONL export",
		Long: `Add the tasks from a JSONL export. Imported tasks get new numbers and
their parent links are rewritten to match. Files with parent loops,
self-parented or duplicated tasks are refused.`,
		Example: `
teal import backup.jsonl
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, e, args[0], oo)
			return oo.HandleError(cmd.OutOrStdout(), describe(err))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, e *env, path string, oo *options.OutputOptions) error {
	tasks, err := loader.LoadTasks(path)
	if err != nil {
		return err
	}

	report := analysis.CheckIntegrity(tasks)
	if len(report.Cycles) > 0 || len(report.SelfParents) > 0 || len(report.DuplicateIDs) > 0 {
		return fmt.Errorf("refusing to import %s:\n  %s", path, strings.Join(report.Problems(), "\n  "))
	}

	db, _, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	imported, err := db.ImportTasks(cmd.Context(), tasks)
	if err != nil {
		return err
	}

	if oo.JSON {
		return oo.WriteJSON(cmd.OutOrStdout(), imported)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", len(imported), path)
	return err
}
