package codegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrConfigNotFound is returned by FindConfigFile when no directory up to the
// project root holds the file.
var ErrConfigNotFound = errors.New("generator config not found")

// FindProjectRoot walks up from startDir to the first directory holding a
// go.mod file.
func FindProjectRoot(startDir string) (string, error) {
	absPath, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for dir := absPath; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in %s or any parent directory", absPath)
		}
		dir = parent
	}
}

// FindConfigFile looks for name in startDir and its parents, stopping at the
// project root.
func FindConfigFile(startDir, name string) (string, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		return "", err
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if dir == root {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		dir = filepath.Dir(dir)
	}
}
