package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/analysis"
	"github.com/kraitsura/teal/pkg/commands/options"
)

func addDoctor(topLevel *cobra.Command, e *env) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the task hierarchy for broken parent links",
		Example: `
teal doctor
teal doctor --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := runDoctor(cmd, e)
			if err != nil {
				return oo.HandleError(cmd.OutOrStdout(), err)
			}

			out := cmd.OutOrStdout()
			if oo.JSON {
				err = oo.WriteJSON(out, report)
			} else {
				err = writeReport(cmd, report)
			}
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("found %d problems", len(report.Problems()))
			}
			return nil
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runDoctor(cmd *cobra.Command, e *env) (analysis.IntegrityReport, error) {
	db, _, err := e.open()
	if err != nil {
		return analysis.IntegrityReport{}, err
	}
	defer db.Close()

	tasks, err := db.ListTasks(cmd.Context(), true)
	if err != nil {
		return analysis.IntegrityReport{}, err
	}
	return analysis.CheckIntegrity(tasks), nil
}

func writeReport(cmd *cobra.Command, r analysis.IntegrityReport) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d tasks in %d trees\n", r.Total, len(r.Roots))
	if r.OK() {
		_, err := fmt.Fprintln(out, "No problems found.")
		return err
	}
	for _, p := range r.Problems() {
		if _, err := fmt.Fprintln(out, "  "+p); err != nil {
			return err
		}
	}
	return nil
}
