package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/kraitsura/teal/pkg/store"
	"github.com/kraitsura/teal/pkg/ui"
	"github.com/kraitsura/teal/pkg/watcher"
)

func addUI(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task list",
		Example: `
teal ui
teal --db ~/work.db
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, e)
		},
	}

	topLevel.AddCommand(cmd)
}

func runUI(cmd *cobra.Command, e *env) error {
	ctx := cmd.Context()
	db, cfg, err := e.open()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := ui.Options{LogFile: cfg.LogFile}
	if cfg.DBPath != store.MemoryPath {
		w, err := watcher.Watch(ctx, cfg.DBPath, cfg.WatchDebounce)
		if err != nil {
			log.Printf("Warning: live reload disabled: %v", err)
		} else {
			defer w.Close()
			opts.Changes = w.Changes()
		}
	}
	return ui.Run(ctx, db, opts)
}
