package pretty

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	summaryDividerWidth = 40
	wordDocument        = "document"
	wordDocuments       = "documents"
)

// Stats are the aggregate counts of a parse run.
type Stats struct {
	Documents int
	Failed    int
	Errors    int
	Warnings  int
	Nodes     int
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 documents parsed, 1 failed (2 errors, 1 warning)".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	docWord := plural(stats.Documents, wordDocument, wordDocuments)

	if stats.Errors == 0 && stats.Warnings == 0 {
		return s.Success.Render(fmt.Sprintf("%d %s parsed", stats.Documents, docWord)) +
			s.Dim.Render(fmt.Sprintf(" (%d nodes)", stats.Nodes)) + "\n"
	}

	var parts []string
	if stats.Errors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors"))))
	}
	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
	}

	line := fmt.Sprintf("%d %s parsed", stats.Documents, docWord)
	if stats.Failed > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.Failed))
	}
	return line + " (" + strings.Join(parts, ", ") + ")\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.Dim.Render(strings.Repeat("-", summaryDividerWidth)))
	builder.WriteString("\n")

	rows := []struct {
		label string
		value int
		style func(...string) string
	}{
		{"Documents", stats.Documents, s.SummaryValue.Render},
		{"Failed", stats.Failed, s.Failure.Render},
		{"Errors", stats.Errors, s.Error.Render},
		{"Warnings", stats.Warnings, s.Warning.Render},
		{"Nodes", stats.Nodes, s.SummaryValue.Render},
	}

	for _, row := range rows {
		value := strconv.Itoa(row.value)
		if row.value > 0 {
			value = row.style(value)
		}
		fmt.Fprintf(&builder, "  %-10s %s\n", row.label+":", value)
	}

	return builder.String()
}
