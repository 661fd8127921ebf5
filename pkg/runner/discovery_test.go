package runner_test

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/kumihan/pkg/runner"
)

func relPaths(t *testing.T, base string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.TXT"), "a")
	writeFile(t, filepath.Join(dir, "story.kumihan"), "s")
	writeFile(t, filepath.Join(dir, "image.png"), "x")
	writeFile(t, filepath.Join(dir, ".hidden.txt"), "h")
	writeFile(t, filepath.Join(dir, ".git", "HEAD.txt"), "g")
	writeFile(t, filepath.Join(dir, "drafts", "wip.txt"), "w")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, "sub", "old.txt.bak"), "o")

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "walks directory",
			opts: runner.Options{Paths: []string{dir}},
			want: []string{"a.TXT", "b.txt", "drafts/wip.txt", "story.kumihan", "sub/c.txt"},
		},
		{
			name: "ignore directory glob",
			opts: runner.Options{Paths: []string{dir}, Ignore: []string{"drafts"}},
			want: []string{"a.TXT", "b.txt", "story.kumihan", "sub/c.txt"},
		},
		{
			name: "ignore doublestar glob",
			opts: runner.Options{Paths: []string{dir}, Ignore: []string{"sub/**"}},
			want: []string{"a.TXT", "b.txt", "drafts/wip.txt", "story.kumihan"},
		},
		{
			name: "ignore base name glob",
			opts: runner.Options{Paths: []string{dir}, Ignore: []string{"*.kumihan"}},
			want: []string{"a.TXT", "b.txt", "drafts/wip.txt", "sub/c.txt"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Paths: []string{dir}, Extensions: []string{".png"}},
			want: []string{"image.png"},
		},
		{
			name: "explicit files keep order and bypass filters",
			opts: runner.Options{Paths: []string{
				filepath.Join(dir, "image.png"),
				filepath.Join(dir, "b.txt"),
				filepath.Join(dir, "image.png"),
				filepath.Join(dir, "nope.txt"),
			}},
			want: []string{"image.png", "b.txt", "nope.txt"},
		},
		{
			name: "file then directory deduplicates",
			opts: runner.Options{Paths: []string{filepath.Join(dir, "sub", "c.txt"), filepath.Join(dir, "sub")}},
			want: []string{"sub/c.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relPaths(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_InvalidIgnore(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{t.TempDir()},
		WorkingDir: t.TempDir(),
		Ignore:     []string{"[unclosed"},
	})
	if err == nil {
		t.Error("Discover() expected error for invalid ignore pattern")
	}
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	matcher, err := runner.CompileIgnore([]string{"drafts/**", "*.bak"})
	if err != nil {
		t.Fatalf("CompileIgnore() error = %v", err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{"drafts/a.txt", true},
		{"drafts/deep/b.txt", true},
		{"notes/old.bak", true},
		{"notes/drafts.txt", false},
		{"chapter.txt", false},
	}

	for _, tt := range tests {
		if got := matcher.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	var nilMatcher *runner.Matcher
	if nilMatcher.Match("anything") {
		t.Error("nil matcher should match nothing")
	}
}
