package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/model"
	"github.com/kraitsura/teal/pkg/render"
	"github.com/kraitsura/teal/pkg/search"
	"github.com/kraitsura/teal/pkg/tree"
)

// fetchLimit bounds concurrent subtree queries.
const fetchLimit = 4

// elementJSON is the --json form of one flattened row.
type elementJSON struct {
	Number      string  `json:"number"`
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Complete    bool    `json:"complete"`
	Depth       int     `json:"depth"`
	LastSibling bool    `json:"last_sibling"`
	Ancestors   []int64 `json:"ancestors"`
}

func toJSON(elems []tree.Element) []elementJSON {
	out := make([]elementJSON, 0, len(elems))
	for _, e := range elems {
		ancestors := e.AncestorIDs
		if ancestors == nil {
			ancestors = []int64{}
		}
		out = append(out, elementJSON{
			Number:      e.Number(),
			ID:          e.Task.ID,
			Description: e.Task.Description,
			Complete:    e.Task.Complete,
			Depth:       e.Depth,
			LastSibling: e.IsLastSibling,
			Ancestors:   ancestors,
		})
	}
	return out
}

func addList(topLevel *cobra.Command, e *env) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every task tree",
		Example: `
teal list
teal ls --search groceries
teal ls --raw | cut -f1,2
teal ls --tree
teal ls --sort alpha
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runList(cmd, e, lo, oo)
			return oo.HandleError(cmd.OutOrStdout(), describe(err))
		},
	}
	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func runList(cmd *cobra.Command, e *env, lo *options.ListOptions, oo *options.OutputOptions) error {
	ctx := cmd.Context()
	db, _, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	roots, err := db.ListTasks(ctx, false)
	if err != nil {
		return err
	}
	roots = search.Search(lo.Search, roots)
	if roots, err = sortRoots(roots, lo.Sort); err != nil {
		return err
	}

	trees, err := fetchTrees(ctx, db, roots)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var elems []tree.Element
	for _, t := range trees {
		elems = append(elems, tree.Flatten(t)...)
	}

	switch {
	case oo.JSON:
		return oo.WriteJSON(out, toJSON(elems))
	case len(elems) == 0 && lo.Raw:
		return nil
	case len(elems) == 0:
		_, err = fmt.Fprintln(out, "There's nothing here, add a task with `teal add`.")
	case lo.Tree:
		_, err = fmt.Fprintln(out, render.Outlines(trees))
	default:
		_, err = fmt.Fprintln(out, render.Elements(elems, lo.Raw))
	}
	return err
}

// sortRoots applies the --sort ordering. An empty order keeps store or
// search ranking order.
func sortRoots(roots []model.Task, order string) ([]model.Task, error) {
	switch order {
	case "":
		return roots, nil
	case options.SortAlpha:
		return search.Alphabetical(roots), nil
	case options.SortDone:
		open, done := search.ByCompletion(roots)
		return append(open, done...), nil
	}
	return nil, fmt.Errorf("unknown sort order %q (use %s or %s)", order, options.SortAlpha, options.SortDone)
}

// subtreeFetcher is the part of the store fetchTrees needs.
type subtreeFetcher interface {
	Subtree(ctx context.Context, id int64) (*tree.Tree, error)
}

// fetchTrees loads the subtree of every root concurrently. The result keeps
// the order of roots.
func fetchTrees(ctx context.Context, db subtreeFetcher, roots []model.Task) ([]*tree.Tree, error) {
	trees := make([]*tree.Tree, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	for i, r := range roots {
		g.Go(func() error {
			t, err := db.Subtree(ctx, r.ID)
			if err != nil {
				return fmt.Errorf("task %d: %w", r.ID, err)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}
