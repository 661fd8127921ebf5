package parser

import (
	"fmt"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// Collector accumulates errors and warnings during a parse call.
// Each notation parser creates one per call.
type Collector struct {
	strict   bool
	errors   []string
	warnings []string
}

// NewCollector creates a collector. In strict mode Issue records errors.
func NewCollector(strict bool) *Collector {
	return &Collector{strict: strict}
}

// Warn records a warning.
func (c *Collector) Warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Error records an error.
func (c *Collector) Error(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// Issue records a recoverable problem: a warning, or an error in strict mode.
func (c *Collector) Issue(format string, args ...any) {
	if c.strict {
		c.Error(format, args...)
		return
	}
	c.Warn(format, args...)
}

// Strict reports whether the collector promotes issues to errors.
func (c *Collector) Strict() bool {
	return c.strict
}

// HasErrors returns true if any error was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the recorded errors.
func (c *Collector) Errors() []string {
	return c.errors
}

// Warnings returns the recorded warnings.
func (c *Collector) Warnings() []string {
	return c.warnings
}

// Absorb copies the diagnostics of a nested result into the collector.
func (c *Collector) Absorb(result *ast.ParseResult) {
	if result == nil {
		return
	}
	c.errors = append(c.errors, result.Errors...)
	c.warnings = append(c.warnings, result.Warnings...)
}

// Result wraps node into a ParseResult carrying the collected diagnostics.
func (c *Collector) Result(node *ast.Node, t Type) *ast.ParseResult {
	result := ast.NewResult(node, t.String())
	if len(c.errors) > 0 {
		result.Errors = append([]string(nil), c.errors...)
	}
	if len(c.warnings) > 0 {
		result.Warnings = append([]string(nil), c.warnings...)
	}
	return result
}
