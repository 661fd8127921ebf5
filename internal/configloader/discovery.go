package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user and system config directories.
const appName = "kumihan"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/kumihan/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/kumihan/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.kumihan.yml).
	Project string

	// ProjectRoot is the directory that ignore patterns are relative to:
	// the directory holding Project, else the enclosing VCS root, else
	// the working directory.
	ProjectRoot string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectConfigFiles are the project config names, in order of preference.
// JSON is accepted because YAML is a superset of it.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".kumihan.yml",
	".kumihan.yaml",
	"kumihan.yml",
	"kumihan.yaml",
	".kumihan.json",
}

// dirConfigFiles are the config names inside the user and system directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations:
// the system directory, $XDG_CONFIG_HOME/kumihan, and the nearest project
// config found by searching upward from workDir. Missing files are
// represented as empty strings.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: firstFile(systemConfigDir(), dirConfigFiles),
	}
	if dir, err := UserConfigDir(); err == nil {
		paths.User = firstFile(dir, dirConfigFiles)
	}

	project, root, err := findProject(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project
	paths.ProjectRoot = root

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

// UserConfigDir returns the directory holding the user-level config.
func UserConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	path, _, err := findProject(ctx, startDir)
	return path, err
}

// findProject returns the nearest project config and the project root.
func findProject(ctx context.Context, startDir string) (string, string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for dir := absDir; ; {
		if err := ctx.Err(); err != nil {
			return "", "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, dir, nil
		}
		if isVCSRoot(dir) {
			return "", dir, nil
		}

		parent := filepath.Dir(dir)
		if dir == homeDir || parent == dir {
			return "", absDir, nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a regular file in
// dir, or "".
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
