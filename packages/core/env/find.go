package env

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFilename is the file FindDotenv looks for.
const DefaultFilename = ".env"

// FindDotenv returns explicit unchanged when it is set. Otherwise it walks
// from startDir (the working directory when empty) up to the filesystem root
// and returns the first .env file found.
func FindDotenv(explicit, startDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return FindFile(DefaultFilename, startDir)
}

// FindFile walks from startDir towards the root looking for a regular file
// called name.
func FindFile(name, startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot determine working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	dir = abs

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s in %s or any parent", ErrNotFound, name, abs)
		}
		dir = parent
	}
}
