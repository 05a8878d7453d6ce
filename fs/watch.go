package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod is how long a file must go without further writes
// before it is reported.
const DefaultQuietPeriod = 500 * time.Millisecond

// Watcher reports gazette files created or written in a directory. Bursts
// of events for the same file are coalesced into one report once the file
// has been quiet for the configured period.
type Watcher struct {
	dir   string
	quiet time.Duration
}

// NewWatcher creates a Watcher for dir. A non-positive quiet period uses
// DefaultQuietPeriod.
func NewWatcher(dir string, quiet time.Duration) *Watcher {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Watcher{dir: dir, quiet: quiet}
}

// Watch calls fn with the path of every source file that settles after
// being created or written, until ctx is cancelled. It returns nil on
// cancellation.
func (w *Watcher) Watch(ctx context.Context, fn func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	tick := w.quiet / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.accept(event); ok {
				pending[path] = time.Now().Add(w.quiet)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.dir, err)

		case now := <-ticker.C:
			for _, path := range due(pending, now) {
				delete(pending, path)
				if ctx.Err() != nil {
					return nil
				}
				fn(path)
			}
		}
	}
}

// accept reports whether event concerns a source file worth processing.
func (w *Watcher) accept(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !IsSourceName(filepath.Base(event.Name)) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// due returns the pending paths whose quiet period has elapsed, sorted.
func due(pending map[string]time.Time, now time.Time) []string {
	var paths []string
	for path, deadline := range pending {
		if !now.Before(deadline) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
