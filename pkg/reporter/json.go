package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/kumihan/pkg/ast"
)

// jsonSchemaVersion versions the JSON document layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version   string         `json:"version"`
	Tool      string         `json:"tool,omitempty"`
	Documents []JSONDocument `json:"documents"`
	Summary   JSONSummary    `json:"summary"`
}

// JSONDocument is one parsed input.
type JSONDocument struct {
	Path   string           `json:"path"`
	Result *ast.ParseResult `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Documents int `json:"documents"`
	Failed    int `json:"failed"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Nodes     int `json:"nodes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, docs []Document) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(docs)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Failed, nil
}

func (r *JSONReporter) buildOutput(docs []Document) *JSONOutput {
	stats := Tally(docs)

	output := &JSONOutput{
		Version:   jsonSchemaVersion,
		Tool:      r.opts.Version,
		Documents: make([]JSONDocument, 0, len(docs)),
		Summary: JSONSummary{
			Documents: stats.Documents,
			Failed:    stats.Failed,
			Errors:    stats.Errors,
			Warnings:  stats.Warnings,
			Nodes:     stats.Nodes,
		},
	}

	for _, doc := range docs {
		jsonDoc := JSONDocument{Path: doc.Path, Result: doc.Result}
		if doc.Err != nil {
			jsonDoc.Error = doc.Err.Error()
		}
		output.Documents = append(output.Documents, jsonDoc)
	}

	return output
}
