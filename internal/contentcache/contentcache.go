// Package contentcache keeps recently fetched file contents in memory so
// that summarize and generate flows in the same session do not refetch the
// same files. Nothing is persisted; the cache dies with the process.
package contentcache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lotas/testwerk/internal/types"
)

const defaultSize = 256

// Cache is a session-scoped LRU of file contents keyed by owner/repo/path.
type Cache struct {
	lru *lru.Cache[string, types.FileContent]
}

// New returns a cache holding up to size entries; size <= 0 uses the default.
func New(size int) *Cache {
	if size <= 0 {
		size = defaultSize
	}
	// Only fails for non-positive sizes, which are handled above.
	c, _ := lru.New[string, types.FileContent](size)
	return &Cache{lru: c}
}

func key(owner, repo, path string) string {
	return fmt.Sprintf("%s/%s:%s", owner, repo, path)
}

// Get returns the cached content for a file, if present.
func (c *Cache) Get(owner, repo, path string) (types.FileContent, bool) {
	return c.lru.Get(key(owner, repo, path))
}

// Put stores fetched contents.
func (c *Cache) Put(owner, repo string, contents []types.FileContent) {
	for _, fc := range contents {
		c.lru.Add(key(owner, repo, fc.Path), fc)
	}
}

// Collect returns cached contents for the given paths and the paths that
// still need fetching.
func (c *Cache) Collect(owner, repo string, paths []string) (cached []types.FileContent, missing []string) {
	for _, p := range paths {
		if fc, ok := c.Get(owner, repo, p); ok {
			cached = append(cached, fc)
		} else {
			missing = append(missing, p)
		}
	}
	return cached, missing
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.lru.Len() }
