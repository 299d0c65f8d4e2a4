// Package watch reports changes to a fixed set of files.
//
// Parent directories are watched rather than the files themselves so that
// editors and atomic writers that replace a file by rename are still seen.
// Bursts of events for the same file are coalesced by a debounce window.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/joshuapare/binkit/internal/logger"
)

// DefaultDebounce is the coalescing window used when none is given.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a set of files.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool // absolute paths
	debounce time.Duration
}

// New starts watching paths. Close releases the underlying watcher.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fw: fw, files: make(map[string]bool), debounce: debounce}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fw.Close() }

// Run calls onChange for each watched file that changed, once per debounce
// window, until ctx is done. Callbacks run on the calling goroutine in path
// order, so onChange needs no locking.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			name, _ := filepath.Abs(ev.Name)
			logger.Debug("file event", "path", name, "op", ev.Op.String())
			if len(pending) == 0 {
				timer.Reset(w.debounce)
			}
			pending[name] = true

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for n := range pending {
				names = append(names, n)
			}
			sort.Strings(names)
			clear(pending)
			for _, n := range names {
				onChange(n)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[name]
}
