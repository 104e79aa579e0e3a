package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
}

// WriteJSON prints v as one line of JSON.
func (o *OutputOptions) WriteJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// HandleError prints err as {"error": "..."} and swallows it when JSON output
// is on. Otherwise err is returned unchanged.
func (o *OutputOptions) HandleError(w io.Writer, err error) error {
	if o.JSON && err != nil {
		if werr := o.WriteJSON(w, map[string]string{"error": err.Error()}); werr != nil {
			return werr
		}
		return nil
	}
	return err
}
