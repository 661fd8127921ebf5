package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = ".bak"

// BackupPath returns the sidecar backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies the file at path to its sidecar backup path, replacing any
// previous backup, and returns the backup path. It returns "" when there
// is no file to back up.
func Backup(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read original for backup: %w", err)
	}

	backupPath := BackupPath(path)
	if err := WriteAtomic(ctx, backupPath, content, stat.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return backupPath, nil
}
