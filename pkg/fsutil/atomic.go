package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode of generated files when none is given.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces path with content. The bytes are staged in a
// sibling temp file which is renamed over path once synced, so a reader
// sees either the old file or the complete new one. A zero mode means
// DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	staged, err := stage(path, content, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// stage writes content to a new temp file next to path and returns its
// name. The temp file is removed on failure.
func stage(path string, content []byte, mode os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", path, err)
	}

	_, werr := tmp.Write(content)
	err = errors.Join(werr, tmp.Sync(), tmp.Close(), os.Chmod(tmp.Name(), mode))
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("stage %s: %w", path, err)
	}
	return tmp.Name(), nil
}
