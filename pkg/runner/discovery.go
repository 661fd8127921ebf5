package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher reports whether a slash-separated relative path is ignored.
type Matcher struct {
	globs []glob.Glob
}

// CompileIgnore compiles ignore patterns. A pattern without a slash also
// matches the base name of a path, so "*.bak" ignores backups anywhere.
func CompileIgnore(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether relPath matches any pattern.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := relPath[strings.LastIndex(relPath, "/")+1:]
	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// Discover expands opts.Paths into the list of files to parse. Explicit
// file paths are kept as given, in argument order, even if they do not
// exist; their read error surfaces when parsing. Directory contents are
// appended in lexical order. Duplicates are dropped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	ignore, err := CompileIgnore(opts.Ignore)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		ignore:     ignore,
		seen:       make(map[string]struct{}),
	}

	for _, path := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			d.add(path)
			continue
		}

		if err := d.walk(ctx, path); err != nil {
			return nil, err
		}
	}

	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	ignore     *Matcher
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if _, ok := d.seen[key]; ok {
		return
	}
	d.seen[key] = struct{}{}
	d.files = append(d.files, path)
}

// relative returns path relative to the working directory for matching.
func (d *discoverer) relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(d.workDir, abs)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		ignored := d.ignore.Match(d.relative(path))

		if entry.IsDir() {
			if hidden || ignored {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || ignored || !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if slices.Contains(d.extensions, strings.ToLower(filepath.Ext(path))) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
