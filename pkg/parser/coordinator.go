package parser

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/ast"
)

// registration binds a parser to its dispatch priority.
type registration struct {
	parser   Parser
	priority int
	seq      int
}

// Registration describes a registered parser in dispatch order.
type Registration struct {
	Type     Type
	Priority int
}

// Coordinator holds the registered notation parsers ordered by priority and
// dispatches parse calls across them with fallback.
//
// Higher priorities are tried first; equal priorities keep registration
// order. The registry is guarded for concurrent Register/Unregister while
// parse calls work on a snapshot.
type Coordinator struct {
	mu      sync.RWMutex
	byType  map[Type]*registration
	ordered []*registration
	nextSeq int
	logger  *log.Logger
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger used for registry and fallback events.
func WithLogger(logger *log.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		byType: make(map[Type]*registration),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds p with the given priority. An existing registration of the
// same type is replaced and counts as a new registration for tie-breaking.
func (c *Coordinator) Register(p Parser, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := p.Type()
	if prev, exists := c.byType[t]; exists {
		c.logger.Warn("replacing registered parser",
			logging.FieldParser, t,
			logging.FieldPrevious, prev.priority,
			logging.FieldPriority, priority,
		)
	}

	c.byType[t] = &registration{parser: p, priority: priority, seq: c.nextSeq}
	c.nextSeq++
	c.reorder()
}

// Unregister removes the parser of type t and reports whether one existed.
func (c *Coordinator) Unregister(t Type) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byType[t]; !exists {
		return false
	}
	delete(c.byType, t)
	c.reorder()
	return true
}

// reorder rebuilds the dispatch order. Caller must hold c.mu.
func (c *Coordinator) reorder() {
	ordered := make([]*registration, 0, len(c.byType))
	for _, reg := range c.byType {
		ordered = append(ordered, reg)
	}
	slices.SortStableFunc(ordered, func(a, b *registration) int {
		if byPriority := cmp.Compare(b.priority, a.priority); byPriority != 0 {
			return byPriority
		}
		return cmp.Compare(a.seq, b.seq)
	})
	c.ordered = ordered
}

// snapshot returns the current dispatch order.
func (c *Coordinator) snapshot() []*registration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.ordered)
}

// Get returns the registered parser of type t.
func (c *Coordinator) Get(t Type) (Parser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.byType[t]
	if !ok {
		return nil, false
	}
	return reg.parser, true
}

// Registrations returns the registered parsers in dispatch order.
func (c *Coordinator) Registrations() []Registration {
	regs := c.snapshot()
	out := make([]Registration, 0, len(regs))
	for _, reg := range regs {
		out = append(out, Registration{Type: reg.parser.Type(), Priority: reg.priority})
	}
	return out
}

// Len returns the number of registered parsers.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byType)
}

// Select returns the first parser, in priority order, whose CanParse accepts
// content. A parser whose CanParse panics is skipped and reported in the
// returned warnings.
func (c *Coordinator) Select(content string) (Parser, []string) {
	return c.selectFrom(c.snapshot(), content)
}

func (c *Coordinator) selectFrom(regs []*registration, content string) (Parser, []string) {
	var warnings []string
	for _, reg := range regs {
		ok, err := safeCanParse(reg.parser, content)
		if err != nil {
			c.logger.Warn("skipping parser", logging.FieldParser, reg.parser.Type(), logging.FieldError, err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", reg.parser.Type(), err))
			continue
		}
		if ok {
			return reg.parser, warnings
		}
	}
	return nil, warnings
}

func safeCanParse(p Parser, content string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("can parse check panicked: %v", r)
		}
	}()
	return p.CanParse(content), nil
}

// Parse parses content. When opts.Parser names a registered parser, exactly
// that parser is used with no fallback; otherwise Parse defers to
// ParseWithFallback. Parse never panics and always returns a result.
func (c *Coordinator) Parse(content string, opts Options) *ast.ParseResult {
	if opts.Parser == TypeUnknown {
		return c.ParseWithFallback(content, opts)
	}

	p, ok := c.Get(opts.Parser)
	if !ok {
		c.logger.Debug("requested parser not registered, using fallback", logging.FieldParser, opts.Parser)
		result := c.ParseWithFallback(content, opts)
		result.Warnings = append([]string{
			fmt.Sprintf("parser %q is not registered; selected automatically", opts.Parser),
		}, result.Warnings...)
		return result
	}

	if content == "" {
		return emptyResult()
	}
	return c.tryParse(p, content, opts)
}

// ParseLines joins lines with "\n" and parses the result.
func (c *Coordinator) ParseLines(lines []string, opts Options) *ast.ParseResult {
	return c.Parse(strings.Join(lines, "\n"), opts)
}

// ParseWithFallback selects a primary parser for content and, if it is
// missing or fails, tries every other registered parser in priority order.
// The first successful result wins. When all fail the result has
// ParserType "failed" and an aggregate error.
func (c *Coordinator) ParseWithFallback(content string, opts Options) *ast.ParseResult {
	if content == "" {
		return emptyResult()
	}

	regs := c.snapshot()
	if len(regs) == 0 {
		return failedResult(ErrNoParsers.Error(), nil)
	}

	primary, warnings := c.selectFrom(regs, content)

	var failures []string
	if primary != nil {
		result := c.tryParse(primary, content, opts)
		if result.IsSuccessful() {
			result.Warnings = append(warnings, result.Warnings...)
			return result
		}
		c.logger.Debug("primary parser failed",
			logging.FieldParser, primary.Type(),
			logging.FieldErrors, len(result.Errors),
		)
		failures = append(failures, describeFailure(primary.Type(), result))
	}

	for _, reg := range regs {
		if primary != nil && reg.parser.Type() == primary.Type() {
			continue
		}
		result := c.tryParse(reg.parser, content, opts)
		if result.IsSuccessful() {
			c.logger.Debug("fallback parser succeeded", logging.FieldParser, reg.parser.Type())
			result.Warnings = append(warnings, result.Warnings...)
			result.SetMeta("fallback", true)
			return result
		}
		failures = append(failures, describeFailure(reg.parser.Type(), result))
	}

	c.logger.Warn("all parsers failed", logging.FieldErrors, len(failures))
	return failedResult(fmt.Sprintf("%s: %s", ErrAllFailed, strings.Join(failures, "; ")), warnings)
}

// tryParse runs p and converts returned errors and panics into an error
// result. It never propagates a failure to the caller.
func (c *Coordinator) tryParse(p Parser, content string, opts Options) (result *ast.ParseResult) {
	t := p.Type()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("parser panicked", logging.FieldParser, t, logging.FieldError, r)
			result = errorResult(t, fmt.Sprintf("%s parser panicked: %v", t, r))
		}
	}()

	res, err := p.Parse(content, opts)
	if err != nil {
		return errorResult(t, fmt.Sprintf("%s parser: %v", t, err))
	}
	if res == nil {
		return errorResult(t, fmt.Sprintf("%s parser returned no result", t))
	}
	if res.ParserType == "" {
		res.ParserType = t.String()
	}
	if res.Node == nil {
		res.Node = ast.NewDocument()
	}
	return res
}

func describeFailure(t Type, result *ast.ParseResult) string {
	if len(result.Errors) == 0 {
		return t.String()
	}
	return fmt.Sprintf("%s: %s", t, strings.Join(result.Errors, ", "))
}

func errorResult(t Type, message string) *ast.ParseResult {
	result := ast.NewResult(ast.NewError(message), t.String())
	result.Errors = []string{message}
	return result
}

func emptyResult() *ast.ParseResult {
	return failedResult(ErrEmptyContent.Error(), nil)
}

func failedResult(message string, warnings []string) *ast.ParseResult {
	result := ast.NewResult(ast.NewError(message), FailedParserType)
	result.Errors = []string{message}
	result.Warnings = warnings
	return result
}
