// Package entities defines the error taxonomy of block resolution.
package entities

import (
	"fmt"
	"strings"
)

// ConfigLoadError indicates a block's configuration file exists but could not
// be read or parsed. It is fatal to constructing the block.
type ConfigLoadError struct {
	Cause error
	Slug  string
	Path  string
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("failed to load config for block %q from %s: %v", e.Slug, e.Path, e.Cause)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Cause
}

// NewConfigLoadError creates a new config load error.
func NewConfigLoadError(slug, path string, cause error) *ConfigLoadError {
	return &ConfigLoadError{
		Slug:  slug,
		Path:  path,
		Cause: cause,
	}
}

// MissingViewError indicates neither a dynamic nor a static view exists for a block.
type MissingViewError struct {
	Slug       string
	Folder     string
	Candidates []string
}

func (e *MissingViewError) Error() string {
	return fmt.Sprintf("block %q has no view in %s (looked for %s)",
		e.Slug, e.Folder, strings.Join(e.Candidates, ", "))
}

// NewMissingViewError creates a new missing view error.
func NewMissingViewError(slug, folder string, candidates ...string) *MissingViewError {
	return &MissingViewError{
		Slug:       slug,
		Folder:     folder,
		Candidates: candidates,
	}
}
