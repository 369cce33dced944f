package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirTheme_ResolvePublicAssetURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		rel  string
		want string
	}{
		{"default base", "", "block-thumbs/a/b.jpg", "/themes/demo/block-thumbs/a/b.jpg"},
		{"root base", "/", "css/site.css", "/themes/demo/css/site.css"},
		{"path base", "/static/", "css/site.css", "/static/themes/demo/css/site.css"},
		{"absolute base", "https://cdn.example.com/assets", "img/logo.png", "https://cdn.example.com/assets/themes/demo/img/logo.png"},
		{"absolute base trailing slash", "https://cdn.example.com/", "img/logo.png", "https://cdn.example.com/themes/demo/img/logo.png"},
		{"traversal is cleaned", "/", "../../secret.txt", "/themes/demo/secret.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := New("demo", "/themes/demo", tt.base)
			assert.Equal(t, tt.want, theme.ResolvePublicAssetURL(tt.rel))
		})
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.Mkdir(dir, 0o750))

	theme, err := Open(dir, "/")
	require.NoError(t, err)
	assert.Equal(t, "demo", theme.Name())
	assert.Equal(t, dir, theme.RootFolder())

	_, err = Open(filepath.Join(dir, "missing"), "/")
	require.Error(t, err)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = Open(file, "/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
