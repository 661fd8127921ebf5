// Package config defines core configuration types for kumihan.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/kumihan/pkg/parser"

// OutputFormat specifies how parse results are printed.
type OutputFormat string

const (
	FormatTree OutputFormat = "tree"
	FormatJSON OutputFormat = "json"
)

// Flavor specifies the Markdown flavor used by the markdown parser.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// ParserConfig overrides the registration of one notation parser.
// Nil fields keep the built-in default.
type ParserConfig struct {
	Enabled  *bool `yaml:"enabled,omitempty"`
	Priority *int  `yaml:"priority,omitempty"`
}

// CacheConfig controls parse result memoization.
type CacheConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Size    int   `yaml:"size,omitempty"`
}

// ChunkingConfig controls parallel parsing of large inputs.
type ChunkingConfig struct {
	// Lines is the target chunk size in lines (0 = default).
	Lines int `yaml:"lines,omitempty"`

	// Jobs bounds concurrent chunk parses (0 = number of CPUs).
	Jobs int `yaml:"jobs,omitempty"`
}

// Config is the root configuration structure for kumihan.
type Config struct {
	// Strict promotes unknown keywords and unterminated blocks to errors.
	Strict *bool `yaml:"strict,omitempty"`

	// Flavor selects the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// Parsers holds per-parser overrides keyed by parser name
	// (block, keyword, markdown, list, content).
	Parsers map[string]ParserConfig `yaml:"parsers,omitempty"`

	// Keywords registers custom keywords, mapping keyword to node type.
	Keywords map[string]string `yaml:"keywords,omitempty"`

	// Cache controls parse result memoization.
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Chunking controls parallel parsing of large inputs.
	Chunking ChunkingConfig `yaml:"chunking,omitempty"`

	// Ignore lists glob patterns of files and directories skipped when
	// parsing a directory tree.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-only options (not loaded from config files).

	// Format is the output format (tree or json).
	Format OutputFormat `yaml:"-"`

	// Parser forces a single parser by name, disabling selection.
	Parser string `yaml:"-"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	strict := false
	cacheEnabled := true
	return &Config{
		Strict:   &strict,
		Flavor:   FlavorGFM,
		Parsers:  make(map[string]ParserConfig),
		Keywords: make(map[string]string),
		Cache: CacheConfig{
			Enabled: &cacheEnabled,
			Size:    parser.DefaultCacheSize,
		},
		Chunking: ChunkingConfig{
			Lines: parser.DefaultChunkLines,
		},
		Format: FormatTree,
	}
}

// IsStrict reports whether strict mode is on.
func (c *Config) IsStrict() bool {
	return c != nil && c.Strict != nil && *c.Strict
}

// CacheEnabled reports whether parse results should be memoized.
// Caching is on unless explicitly disabled.
func (c *Config) CacheEnabled() bool {
	return c == nil || c.Cache.Enabled == nil || *c.Cache.Enabled
}

// ParserEnabled reports whether the named parser should be registered.
// Parsers are enabled unless explicitly disabled.
func (c *Config) ParserEnabled(name string) bool {
	if c == nil {
		return true
	}
	pc, ok := c.Parsers[name]
	return !ok || pc.Enabled == nil || *pc.Enabled
}

// ParserPriority returns the configured priority of the named parser, or
// fallback when none is set.
func (c *Config) ParserPriority(name string, fallback int) int {
	if c == nil {
		return fallback
	}
	if pc, ok := c.Parsers[name]; ok && pc.Priority != nil {
		return *pc.Priority
	}
	return fallback
}
