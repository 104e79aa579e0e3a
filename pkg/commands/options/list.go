package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	Search string
	Raw    bool
	Tree   bool
	Sort   string
}

// Root orderings accepted by --sort.
const (
	SortAlpha = "alpha"
	SortDone  = "done"
)

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show trees whose root matches this fuzzy search term.")
	cmd.Flags().BoolVarP(&o.Raw, "raw", "r", false,
		"Tab-separated output without headers, borders or colour.")
	cmd.Flags().BoolVarP(&o.Tree, "tree", "t", false,
		"Draw each tree as an outline instead of a table.")
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Order root tasks: alpha (by description) or done (open trees first).")
}
