package parser

import (
	"fmt"
	"regexp"
)

// PatternTable is a named set of compiled regular expressions shared by a
// parser across calls. It is read-only after construction.
type PatternTable struct {
	patterns map[string]*regexp.Regexp
}

// MustPatterns compiles the given name → expression table.
// It panics on an invalid expression, so it is meant for package-level tables.
func MustPatterns(exprs map[string]string) *PatternTable {
	table := &PatternTable{patterns: make(map[string]*regexp.Regexp, len(exprs))}
	for name, expr := range exprs {
		table.patterns[name] = regexp.MustCompile(expr)
	}
	return table
}

// Get returns the named pattern. It panics if the name is unknown, which is
// always a programming error.
func (t *PatternTable) Get(name string) *regexp.Regexp {
	re, ok := t.patterns[name]
	if !ok {
		panic(fmt.Sprintf("parser: unknown pattern %q", name))
	}
	return re
}

// Match reports whether the named pattern matches s.
func (t *PatternTable) Match(name, s string) bool {
	return t.Get(name).MatchString(s)
}

// Submatch returns the named pattern's submatches in s, or nil.
func (t *PatternTable) Submatch(name, s string) []string {
	return t.Get(name).FindStringSubmatch(s)
}
