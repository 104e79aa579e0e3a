package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addConfig(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Example: `
teal config
TEAL_DRIVER=sqlite teal config
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := e.store.Config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.ConfigFile != "" {
				fmt.Fprintf(out, "# read from %s\n", cfg.ConfigFile)
			}
			return cfg.Write(out)
		},
	}

	topLevel.AddCommand(cmd)
}
