package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasmodel/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3.x file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI 3.x document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI 3.x document content (JSON or YAML)"`
}

// cachedResult is one decoded document held by resultCache.
type cachedResult struct {
	result   *parser.ParseResult
	lastUsed time.Time
	expires  time.Time
}

func (e *cachedResult) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// resultCache keeps decoded documents for the lifetime of a session, so
// successive tool calls on the same input decode it once.
//
// Keys: "file:<abs path>:<mtime>", "url:<url>" and "content:<sha256>".
// When full, the least recently used entry is evicted.
type resultCache struct {
	mu             sync.Mutex
	entries        map[string]*cachedResult
	capacity       int
	sweeperRunning atomic.Bool
}

var specCache = newResultCache(cfg.CacheMaxSize)

func newResultCache(capacity int) *resultCache {
	return &resultCache{entries: make(map[string]*cachedResult), capacity: capacity}
}

// get returns the cached result for key, or nil. Expired entries are dropped.
func (c *resultCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	now := time.Now()
	if e.expired(now) {
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = now
	return e.result
}

// putWithTTL stores result under key for ttl.
func (c *resultCache) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = &cachedResult{result: result, lastUsed: now, expires: now.Add(ttl)}
}

// evictLocked removes the least recently used entry. c.mu must be held.
func (c *resultCache) evictLocked() {
	var victim string
	var oldest time.Time
	for k, e := range c.entries {
		if victim == "" || e.lastUsed.Before(oldest) {
			victim, oldest = k, e.lastUsed
		}
	}
	delete(c.entries, victim)
}

// sweep drops every expired entry.
func (c *resultCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

// startSweeper runs sweep every interval until ctx is done. Only one sweeper
// runs at a time; extra calls return immediately.
func (c *resultCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperRunning.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperRunning.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *resultCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cachedResult)
}

// size returns the number of cached entries.
func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns the cache key for s, or "" when the result must not
// be cached: per-call parser options change the decode, and files that
// cannot be stat'ed have no stable key.
func makeCacheKey(s specInput, extraOpts []parser.Option) string {
	if len(extraOpts) > 0 {
		return ""
	}

	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

// resolve decodes the document from whichever input was provided, using the
// cache for file, URL, and content inputs. extraOpts are applied after the
// server-wide options, so a per-call dialect wins over OASMODEL_DIALECT.
func (s specInput) resolve(extraOpts ...parser.Option) (*parser.ParseResult, error) {
	count := 0
	for _, set := range []bool{s.File != "", s.URL != "", s.Content != ""} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASMODEL_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, extraOpts)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := cfg.parserOptions()
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, parser.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
	case s.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)))
	}
	opts = append(opts, extraOpts...)

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, result, ttl)
	}
	return result, nil
}
