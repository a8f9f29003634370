// Package watch invalidates cached security profiles when a project's
// policy file changes on disk. The cache's stat-based freshness check
// is the correctness mechanism; this watcher is an eagerness
// optimization for long-lived serve processes, so a failed watch
// degrades silently to stat-only behavior.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/cache"
	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/profile"
)

// debounceDefault collapses editor write bursts into one invalidation.
const debounceDefault = 500 * time.Millisecond

// Invalidator watches project directories and drops their cache
// entries when the policy file is created, written, or removed.
type Invalidator struct {
	watcher  *fsnotify.Watcher
	profiles *cache.Cache
	debounce time.Duration
}

// New creates an Invalidator over the given project directories. The
// parent directory is watched (not the file itself) so create and
// rename events are seen.
func New(profiles *cache.Cache, projectDirs []string) (*Invalidator, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	for _, dir := range projectDirs {
		if dir == "" {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %q: %w", dir, err)
		}
	}

	return &Invalidator{
		watcher:  watcher,
		profiles: profiles,
		debounce: debounceDefault,
	}, nil
}

// Run blocks until ctx is cancelled, invalidating cache entries as
// policy files change.
func (inv *Invalidator) Run(ctx context.Context) error {
	defer inv.watcher.Close()

	// One timer per project dir; each event resets its project's timer
	// so a burst of writes produces a single invalidation.
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-inv.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != profile.PolicyFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			dir := filepath.Dir(event.Name)

			mu.Lock()
			if t, exists := timers[dir]; exists {
				t.Reset(inv.debounce)
			} else {
				timers[dir] = time.AfterFunc(inv.debounce, func() {
					inv.profiles.Invalidate(dir)
					mu.Lock()
					delete(timers, dir)
					mu.Unlock()
				})
			}
			mu.Unlock()

		case err, ok := <-inv.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "auto-claude-gate: watch error: %v\n", err)
		}
	}
}
