// Package fsutil reads Kumihan source files and writes generated files
// safely. Reads are bounded and normalized; writes are atomic.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxFileSize bounds the size of a single input (64 MiB).
const MaxFileSize = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds MaxFileSize.
	ErrTooLarge = errors.New("input too large")
)

//nolint:gochecknoglobals // Read-only byte sequences.
var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	cr      = []byte("\r")
	lf      = []byte("\n")
)

// ReadText reads the file at path and returns its normalized text.
func ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return "", classify(path, err)
	}
	if stat.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", classify(path, err)
	}

	return Normalize(content), nil
}

// ReadAllText reads r up to MaxFileSize and returns its normalized text.
func ReadAllText(r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if len(content) > MaxFileSize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxFileSize)
	}
	return Normalize(content), nil
}

// Normalize strips a leading UTF-8 byte order mark and converts CRLF and
// lone CR line endings to LF.
func Normalize(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if bytes.IndexByte(content, '\r') >= 0 {
		content = bytes.ReplaceAll(content, crlf, lf)
		content = bytes.ReplaceAll(content, cr, lf)
	}
	return string(content)
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
