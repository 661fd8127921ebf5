package runner

import "github.com/yaklabco/kumihan/pkg/ast"

// FileOutcome is the parse outcome of one file.
type FileOutcome struct {
	// Path is the file path as discovered.
	Path string

	// Result is the parse result. Nil when the file could not be read.
	Result *ast.ParseResult

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed successfully.
	FilesParsed int

	// FilesFailed is the number of files whose result has errors.
	FilesFailed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Warnings is the total number of parse warnings.
	Warnings int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to read or parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0 || r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Result == nil:
	case outcome.Result.IsSuccessful():
		r.Stats.FilesParsed++
	default:
		r.Stats.FilesFailed++
	}

	if outcome.Result != nil {
		r.Stats.Warnings += len(outcome.Result.Warnings)
	}
}
