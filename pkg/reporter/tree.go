package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/kumihan/internal/ui/pretty"
	"github.com/yaklabco/kumihan/pkg/ast"
)

// Tree drawing glyphs.
const (
	branchMid  = "├─ "
	branchLast = "└─ "
	indentMid  = "│  "
	indentLast = "   "

	maxContentWidth = 60
)

// TreeReporter renders each document as an indented node tree.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TreeReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, docs []Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	stats := Tally(docs)

	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		r.reportDocument(doc)
	}

	switch {
	case !r.opts.ShowSummary || len(docs) == 0:
	case r.opts.ShowMetadata:
		fmt.Fprint(r.bw, r.styles.FormatSummary(stats))
	default:
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	}

	return stats.Failed, nil
}

func (r *TreeReporter) reportDocument(doc Document) {
	if doc.Err != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(doc.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", doc.Err)),
		)
		return
	}
	if doc.Result == nil {
		return
	}

	result := doc.Result
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(doc.Path, result.ParserType, result.IsSuccessful()))

	if r.opts.ShowMetadata && len(result.Metadata) > 0 {
		fmt.Fprintf(r.bw, "  %s\n", r.styles.Meta.Render(formatMap(result.Metadata)))
	}

	for _, msg := range result.Errors {
		fmt.Fprintln(r.bw, r.styles.FormatIssue(pretty.SeverityError, msg))
	}
	for _, msg := range result.Warnings {
		fmt.Fprintln(r.bw, r.styles.FormatIssue(pretty.SeverityWarning, msg))
	}

	if result.Node != nil {
		r.writeNode(result.Node, "", "", true)
	}
}

// writeNode writes n and its subtree. The root is written without a
// connector.
func (r *TreeReporter) writeNode(n *ast.Node, prefix, connector string, root bool) {
	fmt.Fprintf(r.bw, "%s%s\n", r.styles.Branch.Render(prefix+connector), r.nodeLabel(n))

	childPrefix := prefix
	if !root {
		if connector == branchLast {
			childPrefix += indentLast
		} else {
			childPrefix += indentMid
		}
	}

	for i, child := range n.Children {
		if child == nil {
			continue
		}
		next := branchMid
		if i == len(n.Children)-1 {
			next = branchLast
		}
		r.writeNode(child, childPrefix, next, false)
	}
}

// nodeLabel renders "type "content" key=value".
func (r *TreeReporter) nodeLabel(n *ast.Node) string {
	var parts []string

	typeStyle := r.styles.NodeType
	if n.IsError() {
		typeStyle = r.styles.Error
	}
	parts = append(parts, typeStyle.Render(n.Type))

	if n.Content != "" && len(n.Children) == 0 {
		parts = append(parts, r.styles.Content.Render(quote(n.Content)))
	}

	for _, key := range slices.Sorted(maps.Keys(n.Attributes)) {
		parts = append(parts,
			r.styles.AttrKey.Render(key)+"="+r.styles.AttrValue.Render(formatValue(n.Attributes[key])))
	}

	if r.opts.ShowMetadata && len(n.Metadata) > 0 {
		parts = append(parts, r.styles.Meta.Render(formatMap(n.Metadata)))
	}

	return strings.Join(parts, " ")
}

// quote quotes s, shortening long content.
func quote(s string) string {
	runes := []rune(s)
	if len(runes) > maxContentWidth {
		s = string(runes[:maxContentWidth]) + "…"
	}
	return strconv.Quote(s)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case map[string]any:
		return formatMap(val)
	default:
		return fmt.Sprint(val)
	}
}

// formatMap formats m as "{k=v k=v}" with sorted keys.
func formatMap(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, key+"="+formatValue(m[key]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
