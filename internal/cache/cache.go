// Package cache memoizes one security profile per project directory,
// keyed on the observed (exists, mtime) state of the on-disk policy
// file. Freshness is bounded by filesystem mtime resolution: a rewrite
// that lands within the same mtime tick is served stale. Documented
// limitation, not a defect.
package cache

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/AndyMik90/Claude-AutoBuild-sub002/internal/profile"
)

// StatFunc observes the policy file state. Injectable for tests.
type StatFunc func(path string) (exists bool, mtime time.Time)

// LoaderFunc produces a profile for a project directory. The default is
// profile.GetOrCreateProfile; tests inject counters and canned
// profiles.
type LoaderFunc func(projectDir string) *profile.SecurityProfile

type entry struct {
	profile *profile.SecurityProfile
	exists  bool
	mtime   time.Time
}

// Cache is safe for concurrent use. Entries are replaced wholesale: a
// caller sees either the previous complete entry or the new complete
// entry, never a half-built one. Concurrent misses for the same
// observed file state share a single loader flight.
type Cache struct {
	stat StatFunc
	load LoaderFunc

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

// New creates a cache with the given loader and stat dependency. Nil
// arguments select the OS-backed defaults.
func New(load LoaderFunc, stat StatFunc) *Cache {
	if load == nil {
		load = profile.GetOrCreateProfile
	}
	if stat == nil {
		stat = osStat
	}
	return &Cache{
		stat:    stat,
		load:    load,
		entries: make(map[string]entry),
	}
}

func osStat(path string) (bool, time.Time) {
	info, err := os.Stat(path)
	if err != nil {
		return false, time.Time{}
	}
	return true, info.ModTime()
}

// GetSecurityProfile returns the cached profile for a project, loading
// (or reloading) it when the policy file's observed (exists, mtime)
// tuple differs from the one stored with the entry.
func (c *Cache) GetSecurityProfile(projectDir string) *profile.SecurityProfile {
	exists, mtime := c.stat(profile.PolicyFilePath(projectDir))

	c.mu.Lock()
	if e, ok := c.entries[projectDir]; ok && e.exists == exists && e.mtime.Equal(mtime) {
		p := e.profile
		c.mu.Unlock()
		return p
	}
	c.mu.Unlock()

	// The flight key includes the observed tuple so a caller that saw a
	// newer file state never joins a flight started for the older one.
	key := fmt.Sprintf("%s|%t|%d", projectDir, exists, mtime.UnixNano())
	v, _, _ := c.group.Do(key, func() (any, error) {
		p := c.load(projectDir)
		c.mu.Lock()
		c.entries[projectDir] = entry{profile: p, exists: exists, mtime: mtime}
		c.mu.Unlock()
		return p, nil
	})
	return v.(*profile.SecurityProfile)
}

// Invalidate drops the entry for one project directory. The next lookup
// reloads. Used by the serve-mode file watcher.
func (c *Cache) Invalidate(projectDir string) {
	c.mu.Lock()
	delete(c.entries, projectDir)
	c.mu.Unlock()
}

// Reset discards every entry. Primarily for test isolation and for
// picking up externally migrated policy file paths.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached projects.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide cache shared by all gate calls.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New(nil, nil)
	})
	return defaultCache
}
