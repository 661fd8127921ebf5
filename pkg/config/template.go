package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/kumihan/pkg/parser"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every parser with its default priority.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// ParserInfo describes a built-in parser for template generation.
type ParserInfo struct {
	Name        string
	Priority    int
	Description string
}

// ParserInfoProvider returns the built-in parsers in dispatch order.
// This decouples the template from the parser wiring to avoid circular
// imports.
type ParserInfoProvider func() []ParserInfo

// DefaultParserInfoProvider is set by the builtin parser package during init.
//
//nolint:gochecknoglobals // Intentional extension point for parser info.
var DefaultParserInfoProvider ParserInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Report unknown keywords and unterminated blocks as errors
strict: false

# Markdown flavor: commonmark or gfm
flavor: gfm

# Custom keywords: keyword -> node type
# keywords:
#   注意: notice

# Glob patterns skipped when parsing directories
# ignore:
#   - "drafts/**"

# Per-parser overrides
# parsers:
#   list:
#     enabled: false
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template documenting every setting.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# kumihan configuration - Full Template
# See: https://github.com/yaklabco/kumihan
#
# This template lists every setting with its default value.
# Uncomment and modify settings as needed.

# Report unknown keywords and unterminated blocks as errors
strict: false

# Markdown flavor: commonmark or gfm
flavor: gfm

# Custom keywords: keyword -> node type.
# Names may not contain '#', '[', ']', '+', '-', ',' or whitespace and
# may not shadow a built-in keyword.
keywords: {}

# Parse result memoization
cache:
  enabled: true
  size: 256

# Parallel parsing of large inputs (jobs: 0 = number of CPUs)
chunking:
  lines: 500
  jobs: 0

# Glob patterns of files and directories skipped when parsing
# directories. Patterns without a slash also match base names.
ignore: []

# Per-parser overrides. Higher priorities are tried first.
parsers:
`)

	for _, info := range getParserInfos() {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(info.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", info.Name)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    priority: %d\n", info.Priority)
	}

	return buf.Bytes()
}

// getParserInfos returns information about the built-in parsers.
func getParserInfos() []ParserInfo {
	if DefaultParserInfoProvider != nil {
		return DefaultParserInfoProvider()
	}

	return []ParserInfo{
		{Name: "block", Priority: 100, Description: "Block notation: #keyword#content## and multi-line #keyword# ... ## blocks"},
		{Name: "keyword", Priority: 90, Description: "Inline keyword directives: #keyword content#"},
		{Name: "markdown", Priority: 80, Description: "Markdown compatibility (headings, emphasis, code, links, tables)"},
		{Name: "list", Priority: 70, Description: "Lists: bullets, numbers, letters, roman numerals, definitions, checklists"},
		{Name: "content", Priority: 10, Description: "Fallback: classifies any text and splits it into paragraphs"},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the default settings as JSON.
func templateToJSON() ([]byte, error) {
	parsers := make(map[string]any)
	for _, info := range getParserInfos() {
		parsers[info.Name] = map[string]any{
			"enabled":  true,
			"priority": info.Priority,
		}
	}

	cfg := map[string]any{
		"strict":   false,
		"flavor":   string(FlavorGFM),
		"keywords": map[string]string{},
		"cache": map[string]any{
			"enabled": true,
			"size":    parser.DefaultCacheSize,
		},
		"chunking": map[string]any{
			"lines": parser.DefaultChunkLines,
			"jobs":  0,
		},
		"ignore":  []string{},
		"parsers": parsers,
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# kumihan configuration
# See: https://github.com/yaklabco/kumihan`
}
