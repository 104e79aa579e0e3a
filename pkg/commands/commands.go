package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
)

// Version is stamped at build time.
var Version = "0.1.0"

// New returns the root teal command. Running it without a subcommand opens
// the interactive UI.
func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "teal",
		Short:         "A hierarchical task tracker for the terminal.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, e)
		},
	}
	options.AddStoreArgs(cmd, &e.store)

	addCommands(cmd, e)
	return cmd
}

func addCommands(topLevel *cobra.Command, e *env) {
	addUI(topLevel, e)
	addList(topLevel, e)
	addAdd(topLevel, e)
	addRemove(topLevel, e)
	addComplete(topLevel, e)
	addUncomplete(topLevel, e)
	addShow(topLevel, e)
	addMove(topLevel, e)
	addRename(topLevel, e)
	addExport(topLevel, e)
	addImport(topLevel, e)
	addDoctor(topLevel, e)
	addConfig(topLevel, e)
	addVersion(topLevel)
}
