package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/kumihan/internal/logging"
	"github.com/yaklabco/kumihan/pkg/config"
	"github.com/yaklabco/kumihan/pkg/fsutil"
	"github.com/yaklabco/kumihan/pkg/parser"
	"github.com/yaklabco/kumihan/pkg/parser/builtin"
	"github.com/yaklabco/kumihan/pkg/reporter"
	"github.com/yaklabco/kumihan/pkg/runner"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

var errReadFailed = errors.New("one or more inputs could not be read")

type parseFlags struct {
	format     string
	parser     string
	strict     bool
	jobs       int
	chunkLines int
	metadata   bool
	compact    bool
	ignore     []string
}

func newParseCommand(info BuildInfo) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse Kumihan notation and print the document tree",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags, info)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse Kumihan notation and print the resulting document tree.

Each file is parsed independently. Directories are searched recursively
for .txt and .kumihan files, skipping hidden entries and --ignore
patterns. With no arguments, or with "-", input is read from standard
input. Large inputs are split at blank lines and parsed in parallel.

Examples:
  kumihan parse doc.txt                 # Print the tree of doc.txt
  echo '#太字#hello##' | kumihan parse   # Parse standard input
  kumihan parse --format json doc.txt   # Emit ParseResults as JSON
  kumihan parse --ignore 'drafts/**' .  # Parse a tree, skipping drafts
  kumihan parse --parser list doc.txt   # Force the list parser
  kumihan parse --strict doc.txt        # Treat unknown keywords as errors`

func runParse(cmd *cobra.Command, args []string, flags *parseFlags, info BuildInfo) error {
	logger := commandLogger(cmd)

	cliCfg, err := parseFlagsToConfig(cmd, flags)
	if err != nil {
		return err
	}

	loaded, err := loadConfigResult(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	opts := parser.Options{Strict: cfg.IsStrict()}
	if cfg.Parser != "" {
		typ, ok := parser.ParseType(cfg.Parser)
		if !ok {
			return usageError("unknown parser %q", cfg.Parser)
		}
		opts.Parser = typ
	}

	coordinator, err := builtin.NewCoordinator(builtin.Options{Config: cfg}, parser.WithLogger(logger))
	if err != nil {
		return configError(err)
	}

	chunked := &parser.Chunked{
		Coordinator: coordinator,
		ChunkLines:  cfg.Chunking.Lines,
		Jobs:        cfg.Chunking.Jobs,
	}

	if len(args) == 0 {
		args = []string{stdinPath}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	batch := &parseBatch{
		runner: runner.New(chunked),
		opts: runner.Options{
			WorkingDir:   loaded.Paths.ProjectRoot,
			Ignore:       cfg.Ignore,
			Jobs:         cfg.Chunking.Jobs,
			ParseOptions: opts,
		},
		logger: logger,
	}

	for _, path := range args {
		if path != stdinPath {
			batch.pending = append(batch.pending, path)
			continue
		}
		if err := batch.flush(ctx); err != nil {
			return err
		}

		content, err := readStdin(cmd)
		if err != nil {
			if errors.Is(err, errInteractiveStdin) {
				return usageError("no input: pass files or pipe text on standard input")
			}
			logger.Error("read input", logging.FieldPath, path, logging.FieldError, err)
			batch.docs = append(batch.docs, reporter.Document{Path: path, Err: err})
			batch.readFailed = true
			continue
		}

		logger.Debug("parsing", logging.FieldPath, path, logging.FieldBytes, len(content),
			logging.FieldStrict, opts.Strict)

		result, err := chunked.Parse(ctx, content, opts)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		batch.docs = append(batch.docs, reporter.Document{Path: path, Result: result})
	}
	if err := batch.flush(ctx); err != nil {
		return err
	}
	docs := batch.docs

	if len(docs) == 0 {
		return usageError("no Kumihan files found in %v", args)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode(cmd),
		ShowMetadata: flags.metadata,
		ShowSummary:  len(docs) > 1,
		Compact:      flags.compact,
		Version:      info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failed, err := rep.Report(ctx, docs)
	if err != nil {
		return ioError(fmt.Errorf("report results: %w", err))
	}

	if batch.readFailed {
		return ioError(errReadFailed)
	}
	if failed > 0 {
		return ErrParseFailed
	}

	return nil
}

// parseFlagsToConfig maps explicitly set flags onto a CLI config layer.
func parseFlagsToConfig(cmd *cobra.Command, flags *parseFlags) (*config.Config, error) {
	cliCfg := &config.Config{}

	if cmd.Flags().Changed("format") {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return nil, usageError("%w", err)
		}
		cliCfg.Format = format
	}
	if cmd.Flags().Changed("parser") {
		if _, ok := parser.ParseType(flags.parser); !ok {
			return nil, usageError("unknown parser %q", flags.parser)
		}
		cliCfg.Parser = flags.parser
	}
	if cmd.Flags().Changed("strict") {
		cliCfg.Strict = &flags.strict
	}
	if cmd.Flags().Changed("jobs") {
		if flags.jobs < 0 {
			return nil, usageError("--jobs must not be negative")
		}
		cliCfg.Chunking.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("chunk-lines") {
		if flags.chunkLines < 0 {
			return nil, usageError("--chunk-lines must not be negative")
		}
		cliCfg.Chunking.Lines = flags.chunkLines
	}

	return cliCfg, nil
}

var errInteractiveStdin = errors.New("standard input is a terminal")

// readStdin reads standard input, refusing an interactive terminal.
func readStdin(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if isTerminalReader(in) {
		return "", errInteractiveStdin
	}
	return fsutil.ReadAllText(in)
}

// parseBatch accumulates file arguments so that consecutive files and
// directories are parsed together by the runner, keeping argument order
// relative to standard input.
type parseBatch struct {
	runner     *runner.Runner
	opts       runner.Options
	logger     *log.Logger
	pending    []string
	docs       []reporter.Document
	readFailed bool
}

func (b *parseBatch) flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}

	opts := b.opts
	opts.Paths = b.pending
	b.pending = nil

	b.logger.Debug("parsing files", logging.FieldPaths, opts.Paths, logging.FieldJobs, opts.Jobs,
		logging.FieldStrict, opts.ParseOptions.Strict)

	result, err := b.runner.Run(ctx, opts)
	if err != nil {
		return ioError(err)
	}
	b.logger.Debug("parsed files", logging.FieldFiles, result.Stats.FilesDiscovered,
		logging.FieldErrors, result.Stats.FilesFailed, logging.FieldWarnings, result.Stats.Warnings)

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			b.logger.Error("read input", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			b.readFailed = true
		}
		b.docs = append(b.docs, reporter.Document{
			Path:   outcome.Path,
			Result: outcome.Result,
			Err:    outcome.Error,
		})
	}

	return nil
}

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "tree", "output format: tree, json")
	cmd.Flags().StringVar(&flags.parser, "parser", "",
		"force a parser: block, keyword, markdown, list, content")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"report unknown keywords and unterminated blocks as errors")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel file and chunk parses (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil,
		"glob patterns of files and directories to skip (repeatable)")
	cmd.Flags().IntVar(&flags.chunkLines, "chunk-lines", 0,
		"split inputs into chunks of about this many lines (0 = default)")
	cmd.Flags().BoolVar(&flags.metadata, "metadata", false, "show node and result metadata in tree output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}
