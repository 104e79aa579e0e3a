package ui

import (
	"context"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures Run.
type Options struct {
	// LogFile receives log output while the UI owns the terminal. Logging is
	// discarded when empty.
	LogFile string
	// Changes delivers external database writes, e.g. from a watcher.
	Changes <-chan struct{}
}

// Run starts the interactive UI on the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, s Store, opts Options) error {
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "teal")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		defer log.SetOutput(prev)
	}

	m, err := New(ctx, s, opts.Changes)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
