package container

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{SystemConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)

	assert.NotNil(t, c.BlockFactory())
	assert.NotNil(t, c.BlockCatalog())
	assert.NotNil(t, c.FileWatcher())
	assert.NotNil(t, c.FormatterFactory())
	assert.NotNil(t, c.SchemaValidator())
	assert.Equal(t, slog.Default(), c.Logger())

	deps := c.BlockFactory().Deps()
	assert.Equal(t, "/usr/share/pagekit/block/BaseController.php", deps.Defaults.ControllerFile)
	assert.Equal(t, "view.php", deps.Layout.DynamicView)
}

func TestNew_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
builtin_dir: /opt/site
asset_base_url: https://cdn.example.com
layout:
  static_view: index.html
`), 0o600))

	c, err := New(Options{SystemConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "/opt/site/block/BaseModel.php", c.BlockFactory().Deps().Defaults.ModelFile)
	assert.Equal(t, "index.html", c.BlockFactory().Deps().Layout.StaticView)

	c, err = New(Options{SystemConfigPath: path, BuiltinDir: "/srv/pk", AssetBaseURL: "/assets"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/pk/block/BaseModel.php", c.BlockFactory().Deps().Defaults.ModelFile)
	assert.Equal(t, "/assets", c.SystemConfig().AssetBaseURL)
}

func TestNew_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: [unclosed"), 0o600))

	_, err := New(Options{SystemConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse system config")
}

func TestContainer_OpenTheme(t *testing.T) {
	dir := t.TempDir()
	c, err := New(Options{SystemConfigPath: filepath.Join(dir, "none.yaml"), AssetBaseURL: "https://cdn.example.com"})
	require.NoError(t, err)

	th, err := c.OpenTheme(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, th.RootFolder())
	assert.Contains(t, th.ResolvePublicAssetURL("a.css"), "https://cdn.example.com/themes/")

	_, err = c.OpenTheme(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
