package recipe

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload timing.
const (
	// DebounceDelay collapses bursts of file events into one reload.
	DebounceDelay = 100 * time.Millisecond

	// MaxReloadDelay bounds how long a steady stream of events can hold
	// back a reload.
	MaxReloadDelay = 500 * time.Millisecond
)

// Watch calls fn with the freshly parsed recipe every time the file at
// path is written or recreated. Reloads wait for DebounceDelay of quiet,
// but never more than MaxReloadDelay after the first unhandled event. It
// blocks until ctx is done and then returns nil. Parse failures are passed
// to fn as well.
func Watch(ctx context.Context, path string, fn func(*Recipe, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("recipe: create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("recipe: watch directory: %w", err)
	}

	reload := make(chan struct{}, 1)
	var debounce *time.Timer
	var pending time.Time // first event since the last reload
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending.IsZero() {
				pending = time.Now()
			}
			delay := min(DebounceDelay, max(0, MaxReloadDelay-time.Since(pending)))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(delay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			pending = time.Time{}
			fn(Load(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("recipe: watch: %w", err))
		}
	}
}
