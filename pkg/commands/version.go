package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/updater"
)

// newChecker is swapped out by tests.
var newChecker = updater.NewChecker

type versionJSON struct {
	Version string `json:"version"`
	Latest  string `json:"latest,omitempty"`
	Update  bool   `json:"update_available"`
	URL     string `json:"url,omitempty"`
}

func addVersion(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the teal version",
		Example: `
teal version
teal version --check
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionJSON{Version: Version}
			if check {
				rel, newer, err := newChecker().Check(cmd.Context(), Version)
				if err != nil {
					return oo.HandleError(cmd.OutOrStdout(), fmt.Errorf("check for updates: %w", err))
				}
				v.Latest, v.Update, v.URL = rel.TagName, newer, rel.HTMLURL
			}

			out := cmd.OutOrStdout()
			if oo.JSON {
				return oo.WriteJSON(out, v)
			}
			fmt.Fprintf(out, "teal %s\n", v.Version)
			switch {
			case !check:
			case v.Update:
				fmt.Fprintf(out, "%s is available: %s\n", v.Latest, v.URL)
			default:
				fmt.Fprintln(out, "You are on the latest release.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Ask the release feed for a newer version.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
