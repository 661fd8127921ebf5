// Package builtin wires the five notation parsers into a Coordinator with
// their default priorities.
package builtin

import (
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/block"
	"github.com/yaklabco/kumihan/pkg/parser/content"
	"github.com/yaklabco/kumihan/pkg/parser/keyword"
	"github.com/yaklabco/kumihan/pkg/parser/list"
	"github.com/yaklabco/kumihan/pkg/parser/markdown"
)

// Default priorities. Higher values are tried first.
const (
	PriorityBlock    = 100
	PriorityKeyword  = 90
	PriorityMarkdown = 80
	PriorityList     = 70
	PriorityContent  = 10
)

// Options controls RegisterDefaults.
type Options struct {
	// Config supplies parser overrides, custom keywords, the Markdown
	// flavor and cache settings. Nil uses the defaults.
	Config *config.Config

	// Vocabulary is shared by the block and keyword parsers. Nil creates
	// a fresh vocabulary. Custom keywords from Config are added to it.
	Vocabulary *keyword.Vocabulary

	// Cache memoizes parse results. Nil builds one from Config unless
	// caching is disabled there.
	Cache *parser.Cache
}

// defaultParser describes one built-in parser.
type defaultParser struct {
	typ         parser.Type
	priority    int
	description string
	build       func(env) parser.Parser
}

type env struct {
	vocab  *keyword.Vocabulary
	cache  *parser.Cache
	flavor string
}

//nolint:gochecknoglobals // Read-only registration table.
var defaults = []defaultParser{
	{
		typ: parser.TypeBlock, priority: PriorityBlock,
		description: "Block notation: #keyword#content## and multi-line #keyword# ... ## blocks",
		build: func(e env) parser.Parser {
			return block.New(e.vocab, block.WithCache(e.cache))
		},
	},
	{
		typ: parser.TypeKeyword, priority: PriorityKeyword,
		description: "Inline keyword directives: #keyword content#",
		build: func(e env) parser.Parser {
			return keyword.New(e.vocab, keyword.WithCache(e.cache))
		},
	},
	{
		typ: parser.TypeMarkdown, priority: PriorityMarkdown,
		description: "Markdown compatibility (headings, emphasis, code, links, tables)",
		build: func(e env) parser.Parser {
			return markdown.New(markdown.WithFlavor(e.flavor), markdown.WithCache(e.cache))
		},
	},
	{
		typ: parser.TypeList, priority: PriorityList,
		description: "Lists: bullets, numbers, letters, roman numerals, definitions, checklists",
		build: func(e env) parser.Parser {
			return list.New(list.WithCache(e.cache))
		},
	},
	{
		typ: parser.TypeContent, priority: PriorityContent,
		description: "Fallback: classifies any text and splits it into paragraphs",
		build: func(e env) parser.Parser {
			return content.New(content.WithCache(e.cache))
		},
	},
}

func init() {
	config.DefaultParserInfoProvider = Info
}

// Info describes the built-in parsers in default dispatch order.
func Info() []config.ParserInfo {
	infos := make([]config.ParserInfo, 0, len(defaults))
	for _, d := range defaults {
		infos = append(infos, config.ParserInfo{
			Name:        d.typ.String(),
			Priority:    d.priority,
			Description: d.description,
		})
	}
	return infos
}

// DefaultPriority returns the built-in priority of t.
func DefaultPriority(t parser.Type) (int, bool) {
	for _, d := range defaults {
		if d.typ == t {
			return d.priority, true
		}
	}
	return 0, false
}

// RegisterDefaults registers the block, keyword, markdown, list and
// content parsers on c. Parsers disabled in opts.Config are skipped and
// configured priorities replace the defaults. Custom keywords that cannot
// be registered are reported as an error before anything is registered.
func RegisterDefaults(c *parser.Coordinator, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	vocab := opts.Vocabulary
	if vocab == nil {
		vocab = keyword.NewVocabulary()
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Keywords)) {
		if err := vocab.RegisterCustom(name, cfg.Keywords[name]); err != nil {
			return fmt.Errorf("custom keywords: %w", err)
		}
	}

	cache := opts.Cache
	if cache == nil && cfg.CacheEnabled() {
		cache = parser.NewCache(cfg.Cache.Size)
	}

	flavor := string(cfg.Flavor)
	if flavor == "" {
		flavor = markdown.FlavorGFM
	}

	e := env{vocab: vocab, cache: cache, flavor: flavor}
	for _, d := range defaults {
		name := d.typ.String()
		if !cfg.ParserEnabled(name) {
			continue
		}
		c.Register(d.build(e), cfg.ParserPriority(name, d.priority))
	}

	return nil
}

// NewCoordinator builds a coordinator with the built-in parsers registered.
func NewCoordinator(opts Options, coordinatorOpts ...parser.CoordinatorOption) (*parser.Coordinator, error) {
	c := parser.NewCoordinator(coordinatorOpts...)
	if err := RegisterDefaults(c, opts); err != nil {
		return nil, err
	}
	return c, nil
}
