package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/ast"
	"github.com/yaklabco/kumihan/pkg/fsutil"
	"github.com/yaklabco/kumihan/pkg/parser"
)

// DocumentParser parses one document. *parser.Chunked satisfies it.
type DocumentParser interface {
	Parse(ctx context.Context, content string, opts parser.Options) (*ast.ParseResult, error)
}

// Runner parses many files concurrently with a DocumentParser.
type Runner struct {
	// Parser parses the content of each file.
	Parser DocumentParser
}

// New creates a new Runner.
func New(p DocumentParser) *Runner {
	return &Runner{Parser: p}
}

// Run discovers files under opts.Paths and parses them with a worker pool.
// Outcomes are returned in discovery order regardless of completion order.
// Read errors are recorded per file; the only returned error is discovery
// failure or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				outcomes[idx] = r.parseFile(ctx, files[idx], opts.ParseOptions)
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	return result, nil
}

func (r *Runner) parseFile(ctx context.Context, path string, opts parser.Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := fsutil.ReadText(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	res, err := r.Parser.Parse(ctx, content, opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res

	logging.FromContext(ctx).Debug("parsed file",
		logging.FieldPath, path,
		logging.FieldParser, res.ParserType,
		logging.FieldErrors, len(res.Errors),
		logging.FieldWarnings, len(res.Warnings),
	)

	return outcome
}
