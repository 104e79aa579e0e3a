package commands

import (
	"errors"
	"fmt"

	"github.com/kraitsura/teal/pkg/commands/options"
	"github.com/kraitsura/teal/pkg/config"
	"github.com/kraitsura/teal/pkg/store"
	"github.com/kraitsura/teal/pkg/tree"
)

// env is shared by every subcommand of one root command.
type env struct {
	store options.StoreOptions
}

// open resolves the configuration and opens the task database.
func (e *env) open() (*store.DB, *config.Config, error) {
	cfg, err := e.store.Config()
	if err != nil {
		return nil, nil, err
	}
	db, err := cfg.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	return db, cfg, nil
}

var errParentMissing = errors.New("the task you set as a parent task doesn't exist")

// describe turns store and tree errors into messages for people.
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tree.ErrMultipleRoots), errors.Is(err, tree.ErrNoRootFound):
		return fmt.Errorf("data inconsistency, run `teal doctor`: %w", err)
	case errors.Is(err, store.ErrParentNotFound):
		return errParentMissing
	case errors.Is(err, store.ErrTaskNotFound):
		return fmt.Errorf("no task found: %w", err)
	}
	return err
}
