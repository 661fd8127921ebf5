package pretty

import (
	"fmt"
	"strings"
)

// Severity labels of parse issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// FormatSeverity formats a severity label with its color.
func (s *Styles) FormatSeverity(severity string) string {
	switch severity {
	case SeverityError:
		return s.Error.Render(severity)
	case SeverityWarning:
		return s.Warning.Render(severity)
	default:
		return s.Info.Render(severity)
	}
}

// FormatIssue formats one parse error or warning, indenting continuation
// lines under the message.
func (s *Styles) FormatIssue(severity, message string) string {
	message = strings.ReplaceAll(message, "\n", "\n    ")
	return fmt.Sprintf("  %s: %s", s.FormatSeverity(severity), message)
}

// FormatFileHeader formats the header line of one parsed document.
func (s *Styles) FormatFileHeader(path, parserType string, successful bool) string {
	header := s.FilePath.Render(path) + " " + s.ParserType.Render("["+parserType+"]")
	if !successful {
		header += " " + s.Failure.Render("failed")
	}
	return header
}
