// Package theme provides a directory-backed theme and the URL resolver for
// its public assets.
package theme

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DirTheme is a theme rooted at a folder on disk. Its public assets are
// served under <AssetBaseURL>/themes/<name>/.
type DirTheme struct {
	name        string
	root        string
	assetPrefix string
}

// Open resolves root to an absolute directory and builds a DirTheme.
func Open(root, assetBaseURL string) (*DirTheme, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve theme root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open theme: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("theme root %s is not a directory", abs)
	}
	return New(filepath.Base(abs), abs, assetBaseURL), nil
}

// New constructs a DirTheme without touching the disk.
func New(name, root, assetBaseURL string) *DirTheme {
	return &DirTheme{
		name:        name,
		root:        filepath.Clean(root),
		assetPrefix: assetPrefix(assetBaseURL, name),
	}
}

func assetPrefix(base, name string) string {
	if base == "" {
		base = "/"
	}
	if u, err := url.Parse(base); err == nil && u.Scheme != "" {
		return strings.TrimSuffix(u.JoinPath("themes", name).String(), "/") + "/"
	}
	return path.Join("/", base, "themes", name) + "/"
}

// Name returns the theme's folder name.
func (t *DirTheme) Name() string {
	return t.name
}

// RootFolder returns the absolute theme root.
func (t *DirTheme) RootFolder() string {
	return t.root
}

// ResolvePublicAssetURL maps a path relative to the theme's public folder to a URL.
func (t *DirTheme) ResolvePublicAssetURL(relativePath string) string {
	return t.assetPrefix + strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(relativePath)), "/")
}
