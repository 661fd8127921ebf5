//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/kumihan"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"s":   Smoke,
	"bp":  Bench.Parsers,
	"fmt": Lint.Fmt,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles the kumihan binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building kumihan...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/kumihan")
}

// Check runs format, lint, test and the CLI smoke checks sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Smoke)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs kumihan to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing kumihan...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/kumihan")
}

// Uninstall removes kumihan from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	binPath, err := installedBinary("kumihan")
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("kumihan is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Coverage generates an HTML coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "./...")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose", "./...")
}

// Core runs the tests of the parsing core only.
func (Test) Core() error {
	fmt.Println("Running parser core tests...")
	return gotestsum("pkgname-and-test-fails", "./pkg/ast/...", "./pkg/parser/...", "./pkg/langdetect/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
		Smoke,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	files := []string{"go.mod", "go.sum"}

	before := make(map[string][]byte, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds the CLI for every release platform.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/kumihan"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// Default runs every benchmark.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Parsers runs the parser benchmarks only, including chunked parsing.
func (Bench) Parsers() error {
	fmt.Println("Running parser benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/parser/...", "./pkg/langdetect/...")
}

// Fast runs every benchmark once.
func (Bench) Fast() error {
	fmt.Println("Running benchmarks (one iteration each)...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchtime=1x", "./...")
}

// smokeCase runs the built binary and checks its output.
type smokeCase struct {
	args  []string
	stdin string
	want  string
}

//nolint:gochecknoglobals // Read-only smoke table.
var smokeCases = []smokeCase{
	{args: []string{"parse", "--format", "json", "-"}, stdin: smokeSample, want: `"parser_type"`},
	{args: []string{"parse", "--parser", "list", "-"}, stdin: "- one\n- two\n", want: "list_item"},
	{args: []string{"keywords", "--format", "json"}, want: `"太字"`},
	{args: []string{"parsers"}, want: "content"},
	{args: []string{"version"}, want: "kumihan"},
}

// Smoke builds the binary and runs each CLI command against it.
func Smoke() error {
	st.Deps(Build)

	for _, tc := range smokeCases {
		cmd := exec.Command(binary, append([]string{"--color", "never"}, tc.args...)...)
		cmd.Stdin = strings.NewReader(tc.stdin)
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("kumihan %s: %w\n%s", strings.Join(tc.args, " "), err, out)
		}
		if !strings.Contains(string(out), tc.want) {
			return fmt.Errorf("kumihan %s: output lacks %q:\n%s", strings.Join(tc.args, " "), tc.want, out)
		}
		fmt.Printf("  ✓ kumihan %s\n", strings.Join(tc.args, " "))
	}
	return nil
}

// gotestsum runs the given packages under gotestsum with race detection
// and coverage.
func gotestsum(format string, pkgs ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-race", "-p", nCores, "-parallel", nCores}
	args = append(args, pkgs...)
	args = append(args, "-coverprofile=coverage.out", "-covermode=atomic")
	return sh.RunV("go", args...)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// installedBinary returns the path where go install places the binary.
func installedBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}

// smokeSample mixes block, keyword, list and Markdown notation.
const smokeSample = `#見出し1#はじめに##

#太字#hello## and #イタリック world#

- one
- two

## Markdown heading
`
