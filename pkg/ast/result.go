package ast

import "fmt"

// ParseResult is the envelope returned by a parse call: the produced tree
// plus the identity of the parser and its diagnostics.
type ParseResult struct {
	// Node is the root of the produced tree.
	Node *Node `json:"node"`

	// ParserType names the parser that produced Node ("failed" when none did).
	ParserType string `json:"parser_type"`

	// Metadata carries parser-level information about the run.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Errors are failures; any error makes the result unsuccessful.
	Errors []string `json:"errors,omitempty"`

	// Warnings never affect success.
	Warnings []string `json:"warnings,omitempty"`
}

// NewResult creates a ParseResult for node produced by parserType.
func NewResult(node *Node, parserType string) *ParseResult {
	return &ParseResult{
		Node:       node,
		ParserType: parserType,
		Metadata:   make(map[string]any),
	}
}

// IsSuccessful returns true when no errors were recorded.
func (r *ParseResult) IsSuccessful() bool {
	return len(r.Errors) == 0
}

// AddError appends a formatted error message.
func (r *ParseResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarning appends a formatted warning message.
func (r *ParseResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// SetMeta sets a result-level metadata entry.
func (r *ParseResult) SetMeta(key string, value any) {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
}
