package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erraggy/flatjson/flattener"
)

// resultCache is a session-scoped LRU of flatten results. Cached results are
// shared between calls and must be treated as read-only.
type resultCache struct {
	lru *lru.Cache[string, *flattener.Result]
}

var flattenCache = newResultCache(cfg.CacheMaxSize)

// newResultCache returns a cache holding up to size results. A non-positive
// size yields a cache that stores nothing.
func newResultCache(size int) *resultCache {
	c, err := lru.New[string, *flattener.Result](size)
	if err != nil {
		return &resultCache{}
	}
	return &resultCache{lru: c}
}

func (c *resultCache) get(key string) (*flattener.Result, bool) {
	if c.lru == nil || key == "" {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *resultCache) put(key string, result *flattener.Result) {
	if c.lru == nil || key == "" {
		return
	}
	c.lru.Add(key, result)
}

// reset clears all cached entries. Used in tests.
func (c *resultCache) reset() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// size returns the number of cached entries.
func (c *resultCache) size() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// documentInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type documentInput struct {
	File    string
	Content string
}

func (d documentInput) validate() error {
	switch {
	case d.File != "" && d.Content != "":
		return fmt.Errorf("exactly one of file or content must be provided (got both)")
	case d.File == "" && d.Content == "":
		return fmt.Errorf("exactly one of file or content must be provided (got none)")
	}
	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set FLATJSON_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	return nil
}

// source returns the flattener option that reads the document.
func (d documentInput) source() flattener.Option {
	if d.File != "" {
		return flattener.WithFilePath(d.File)
	}
	return flattener.WithBytes([]byte(d.Content))
}

// cacheKey identifies the document. Files are keyed by absolute path and
// modification time, content by its SHA-256 hash. An empty key disables
// caching for this input.
func (d documentInput) cacheKey() string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d:%d", absPath, info.ModTime().UnixNano(), info.Size())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}
