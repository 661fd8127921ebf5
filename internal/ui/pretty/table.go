package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minColumnWidth   = 4
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "…"
)

// TableFormatter formats rows of text as an aligned, styled table.
// Widths are measured in terminal cells so wide (CJK) characters line up.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTable formats headers and rows. The last column absorbs any
// shrinking needed to fit the terminal width.
func (t *TableFormatter) FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(headers, rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.formatRow(headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	return builder.String()
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(minColumnWidth, lipgloss.Width(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	if total := totalWidth(widths); total > t.termWidth {
		last := len(widths) - 1
		widths[last] = max(minColumnWidth, widths[last]-(total-t.termWidth))
	}

	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return total
}

// formatRow pads each cell to its column width.
func (t *TableFormatter) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(truncate(cell, width), width)
	}
	return " " + strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths []int) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths)))
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var builder strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		builder.WriteRune(r)
		used += w
	}
	return builder.String() + ellipsis
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
