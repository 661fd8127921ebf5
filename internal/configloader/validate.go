package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/keyword"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "parsers.list.priority").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown parser names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Zero values
// count as unset and are not reported.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: tree, json", cfg.Format)
	}

	if cfg.Parser != "" {
		if _, ok := parser.ParseType(cfg.Parser); !ok {
			result.addError("parser", cfg.Parser, "unknown parser %q; must be one of: %s", cfg.Parser, parserNames())
		}
	}

	if cfg.Cache.Size < 0 {
		result.addError("cache.size", cfg.Cache.Size, "cache size must be >= 0 (0 means default)")
	}
	if cfg.Chunking.Lines < 0 {
		result.addError("chunking.lines", cfg.Chunking.Lines, "chunk lines must be >= 0 (0 means default)")
	}
	if cfg.Chunking.Jobs < 0 {
		result.addError("chunking.jobs", cfg.Chunking.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	validateParsers(cfg, result)
	validateKeywords(cfg, result)

	return result
}

// validateParsers checks per-parser overrides. Unknown parser names are
// ignored with a warning.
func validateParsers(cfg *config.Config, result *ValidationResult) {
	enabled := 0
	for _, t := range parser.AllTypes() {
		if cfg.ParserEnabled(t.String()) {
			enabled++
		}
	}
	if enabled == 0 {
		result.addError("parsers", nil, "every parser is disabled; at least one must stay enabled")
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Parsers)) {
		if _, ok := parser.ParseType(name); !ok {
			result.addWarning("parsers."+name, name, "unknown parser %q; it will be ignored", name)
		}
	}
}

// validateKeywords checks custom keywords against the built-in vocabulary.
func validateKeywords(cfg *config.Config, result *ValidationResult) {
	vocab := keyword.NewVocabulary()
	for _, name := range slices.Sorted(maps.Keys(cfg.Keywords)) {
		if err := vocab.RegisterCustom(name, cfg.Keywords[name]); err != nil {
			result.addError("keywords."+name, cfg.Keywords[name], "%v", err)
		}
	}
}

func parserNames() string {
	names := make([]string, 0, len(parser.AllTypes()))
	for _, t := range parser.AllTypes() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
