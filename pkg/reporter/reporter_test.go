package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/reporter"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to tree", input: "", want: reporter.FormatTree},
		{name: "tree", input: "tree", want: reporter.FormatTree},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, reporter.FormatTree.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.False(t, reporter.Format("sarif").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "tree reporter", format: reporter.FormatTree},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "empty defaults to tree", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func sampleDocument() reporter.Document {
	doc := ast.NewDocument()
	heading := &ast.Node{Type: ast.TypeHeading, Content: "Title"}
	heading.SetAttr("level", 1)
	list := ast.NewNode(ast.TypeList)
	ast.AppendChild(list,
		&ast.Node{Type: ast.TypeListItem, Content: "a"},
		&ast.Node{Type: ast.TypeListItem, Content: "b"},
	)
	ast.AppendChild(doc, heading, list)

	return reporter.Document{Path: "doc.txt", Result: ast.NewResult(doc, "markdown")}
}

func TestTreeReporter_Tree(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTreeReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	failed, err := rep.Report(context.Background(), []reporter.Document{sampleDocument()})
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	want := "doc.txt [markdown]\n" +
		"document\n" +
		"├─ heading \"Title\" level=1\n" +
		"└─ list\n" +
		"   ├─ list_item \"a\"\n" +
		"   └─ list_item \"b\"\n" +
		"\n" +
		"1 document parsed (5 nodes)\n"
	assert.Equal(t, want, buf.String())
}

func TestTreeReporter_Issues(t *testing.T) {
	result := ast.NewResult(ast.NewError("boom"), "failed")
	result.AddError("block: unterminated block")
	result.AddWarning("unknown keyword: 謎")

	docs := []reporter.Document{
		{Path: "bad.txt", Result: result},
		{Path: "missing.txt", Err: errors.New("no such file")},
	}

	var buf bytes.Buffer
	rep := reporter.NewTreeReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	failed, err := rep.Report(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	out := buf.String()
	assert.Contains(t, out, "bad.txt [failed] failed\n")
	assert.Contains(t, out, "  error: block: unterminated block\n")
	assert.Contains(t, out, "  warning: unknown keyword: 謎\n")
	assert.Contains(t, out, "error \"boom\"\n")
	assert.Contains(t, out, "missing.txt: error: no such file\n")
	assert.Contains(t, out, "2 documents parsed, 2 failed (2 errors, 1 warning)")
}

func TestTreeReporter_Metadata(t *testing.T) {
	doc := sampleDocument()
	doc.Result.SetMeta("fallback", true)
	doc.Result.Node.SetMeta("line", 1)

	var buf bytes.Buffer
	rep := reporter.NewTreeReporter(reporter.Options{Writer: &buf, Color: "never", ShowMetadata: true})

	_, err := rep.Report(context.Background(), []reporter.Document{doc})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "  {fallback=true}\n")
	assert.Contains(t, buf.String(), "document {line=1}\n")
	assert.NotContains(t, buf.String(), "parsed")
}

func TestTreeReporter_MetadataSummaryBlock(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTreeReporter(reporter.Options{
		Writer: &buf, Color: "never", ShowMetadata: true, ShowSummary: true,
	})

	_, err := rep.Report(context.Background(), []reporter.Document{sampleDocument(), sampleDocument()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "\nSummary\n")
	assert.Contains(t, out, "  Documents: 2\n")
	assert.Contains(t, out, "  Nodes:     10\n")
	assert.NotContains(t, out, "documents parsed")
}

func TestJSONReporter(t *testing.T) {
	docs := []reporter.Document{
		sampleDocument(),
		{Path: "missing.txt", Err: errors.New("no such file")},
	}

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Version: "v1.2.3"})

	failed, err := rep.Report(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, "v1.2.3", out.Tool)
	require.Len(t, out.Documents, 2)

	first := out.Documents[0]
	assert.Equal(t, "doc.txt", first.Path)
	require.NotNil(t, first.Result)
	assert.Equal(t, "markdown", first.Result.ParserType)
	require.Len(t, first.Result.Node.Children, 2)
	assert.Equal(t, ast.TypeHeading, first.Result.Node.Children[0].Type)

	assert.Equal(t, "no such file", out.Documents[1].Error)
	assert.Nil(t, out.Documents[1].Result)

	assert.Equal(t, reporter.JSONSummary{Documents: 2, Failed: 1, Errors: 1, Nodes: 5}, out.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"version":"1.0.0","documents":[],"summary":{"documents":0,"failed":0,"errors":0,"warnings":0,"nodes":0}}`,
		buf.String())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestTally(t *testing.T) {
	result := ast.NewResult(ast.NewDocument(), "content")
	result.AddWarning("replaced invalid UTF-8")

	stats := reporter.Tally([]reporter.Document{
		sampleDocument(),
		{Path: "w.txt", Result: result},
	})

	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, stats.Warnings)
	assert.Equal(t, 6, stats.Nodes)
}
