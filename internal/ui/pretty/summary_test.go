package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
)

func TestFormatSummaryOneLine_Clean(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatSummaryOneLine(pretty.Stats{Documents: 1, Nodes: 4})
	assert.Equal(t, "1 document parsed (4 nodes)\n", got)
}

func TestFormatSummaryOneLine_WithIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatSummaryOneLine(pretty.Stats{Documents: 3, Failed: 1, Errors: 2, Warnings: 1})
	assert.Equal(t, "3 documents parsed, 1 failed (2 errors, 1 warning)\n", got)
}

func TestFormatSummaryOneLine_WarningsOnly(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatSummaryOneLine(pretty.Stats{Documents: 2, Warnings: 3})
	assert.Equal(t, "2 documents parsed (3 warnings)\n", got)
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatSummary(pretty.Stats{Documents: 2, Failed: 1, Errors: 1, Nodes: 9})
	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "Documents: 2")
	assert.Contains(t, got, "Failed:    1")
	assert.Contains(t, got, "Nodes:     9")
}
