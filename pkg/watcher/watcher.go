package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// companionSuffixes are the SQLite side files written alongside the database.
var companionSuffixes = []string{"", "-wal", "-journal", "-shm"}

// Watcher sends a notification on Changes after writes to the database file
// settle.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	deb     *debouncer
	changes chan struct{}

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Watch starts watching dbPath. The directory containing it is watched so
// the file may be replaced or created later. A zero debounce uses
// DefaultDebounceDuration.
func Watch(ctx context.Context, dbPath string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dbPath, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.deb = newDebouncer(debounce, w.notify)

	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Changes delivers at most one pending notification at a time.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.deb.Stop()
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
		// A notification is already queued; the reader will reload once.
	}
}

// Relevant reports whether an event path belongs to the watched database.
func (w *Watcher) Relevant(name string) bool {
	name = filepath.Clean(name)
	if !strings.HasPrefix(name, w.path) {
		return false
	}
	suffix := strings.TrimPrefix(name, w.path)
	for _, s := range companionSuffixes {
		if suffix == s {
			return true
		}
	}
	return false
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.deb.Stop()
			return
		case <-w.done:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: database watcher error: %v", err)
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if w.Relevant(evt.Name) {
				w.deb.Trigger()
			}
		}
	}
}
