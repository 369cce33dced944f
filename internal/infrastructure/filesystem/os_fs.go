// Package filesystem provides the on-disk implementation of ports.FileSystem.
package filesystem

import (
	"fmt"
	"os"
	"strings"
)

// OSFileSystem reads the real filesystem. It never writes.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Exists reports whether a regular file exists at path. Directories and
// unreadable entries count as absent.
func (f *OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadFile returns the contents of the file at path.
func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	//nolint:gosec // G304: paths are built from a sanitized block folder
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ListDirs returns the sorted names of the visible sub-directories of dir.
func (f *OSFileSystem) ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		dirs = append(dirs, e.Name())
	}
	return dirs, nil
}
