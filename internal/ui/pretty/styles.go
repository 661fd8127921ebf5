// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Document components
	FilePath   lipgloss.Style
	ParserType lipgloss.Style

	// Tree components
	Branch    lipgloss.Style
	NodeType  lipgloss.Style
	Content   lipgloss.Style
	AttrKey   lipgloss.Style
	AttrValue lipgloss.Style
	Meta      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette used when color is enabled.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorWhite   = lipgloss.Color("7")
	colorGray    = lipgloss.Color("8")
)

// NewStyles creates a new Styles. With color disabled every style renders
// its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	style := func(fg lipgloss.Color, bold, italic bool) lipgloss.Style {
		st := lipgloss.NewStyle()
		if !colorEnabled {
			return st
		}
		if fg != "" {
			st = st.Foreground(fg)
		}
		return st.Bold(bold).Italic(italic)
	}

	return &Styles{
		Error:   style(colorRed, true, false),
		Warning: style(colorYellow, true, false),
		Info:    style(colorBlue, true, false),

		FilePath:   style("", true, false),
		ParserType: style(colorMagenta, false, false),

		Branch:    style(colorGray, false, false),
		NodeType:  style(colorCyan, true, false),
		Content:   style(colorWhite, false, false),
		AttrKey:   style(colorBlue, false, false),
		AttrValue: style(colorGreen, false, false),
		Meta:      style(colorGray, false, true),

		SummaryTitle: style("", true, false),
		SummaryValue: style("", false, false),
		Success:      style(colorGreen, true, false),
		Failure:      style(colorRed, true, false),

		TableHeader:    style(colorWhite, true, false),
		TableSeparator: style(colorGray, false, false),

		Dim:  style(colorGray, false, false),
		Bold: style("", true, false),
	}
}

// IsColorEnabled reports whether output to writer should be styled.
// Mode is "always", "never" or "auto" (anything else). In auto mode
// NO_COLOR disables color, FORCE_COLOR enables it, and otherwise color
// follows whether writer is a terminal.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}

	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	}

	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
