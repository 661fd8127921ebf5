package parser

import (
	"maps"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// DefaultCacheSize is the number of results a Cache keeps by default.
const DefaultCacheSize = 256

// cacheKey identifies a memoized parse.
type cacheKey struct {
	parser Type
	hash   uint64
	strict bool
	offset int
}

// Cache memoizes parse results keyed by parser type and a hash of the input.
//
// Stored and returned results are deep copies, so callers may mutate what
// they receive. A nil *Cache is valid and never hits.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]*ast.ParseResult
	order   []cacheKey
	hits    int
	misses  int
}

// NewCache creates a cache holding at most size results.
// A non-positive size uses DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[cacheKey]*ast.ParseResult, size),
	}
}

func newCacheKey(t Type, content string, opts Options) cacheKey {
	return cacheKey{parser: t, hash: xxhash.Sum64String(content), strict: opts.Strict, offset: opts.LineOffset}
}

// Get returns a copy of the memoized result for (t, content, opts).
func (c *Cache) Get(t Type, content string, opts Options) (*ast.ParseResult, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[newCacheKey(t, content, opts)]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return cloneResult(result), true
}

// Put memoizes a copy of result. The oldest entry is evicted when full.
func (c *Cache) Put(t Type, content string, opts Options, result *ast.ParseResult) {
	if c == nil || result == nil {
		return
	}

	key := newCacheKey(t, content, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.size {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cloneResult(result)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every cached result.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*ast.ParseResult, c.size)
	c.order = nil
}

func cloneResult(result *ast.ParseResult) *ast.ParseResult {
	clone := &ast.ParseResult{
		Node:       result.Node.Clone(),
		ParserType: result.ParserType,
		Metadata:   maps.Clone(result.Metadata),
		Errors:     slices.Clone(result.Errors),
		Warnings:   slices.Clone(result.Warnings),
	}
	return clone
}
