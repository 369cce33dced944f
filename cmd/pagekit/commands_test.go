package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagekit-dev/pagekit/internal/application/dto"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTheme writes a theme with a static, a dynamic and a broken block.
func newTestTheme(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"blocks/hero/view.html":          "<h1>Hi</h1>",
		"blocks/hero/config.yaml":        "title: Hello\nitems:\n  - a\n  - b\nsettings:\n  columns: 3\n  api_key: abc123\n",
		"blocks/gallery/view.php":        "<?php echo 'gallery';",
		"blocks/gallery/controller.php":  "<?php",
		"blocks/broken/view.html":        "<p>broken</p>",
		"blocks/broken/config.json":      "{bad",
		"public/block-thumbs/.gitignore": "*",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

// runCommand executes a freshly built command against theme.
func runCommand(t *testing.T, theme string, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	viper.Set("theme", theme)
	viper.Set("builtin-dir", "/opt/pagekit")
	viper.Set("asset-base-url", "https://cdn.example.com")

	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestBlockGet(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlockGetCmd(), "hero", "title")
	require.NoError(t, err)
	assert.Equal(t, "Hello\n", out)

	out, err = runCommand(t, theme, newBlockGetCmd(), "hero", "settings.columns")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = runCommand(t, theme, newBlockGetCmd(), "hero", "items.1")
	require.NoError(t, err)
	assert.Equal(t, "b\n", out)

	out, err = runCommand(t, theme, newBlockGetCmd(), "hero", "items")
	require.NoError(t, err)
	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "- b")
}

func TestBlockGet_Missing(t *testing.T) {
	theme := newTestTheme(t)

	_, err := runCommand(t, theme, newBlockGetCmd(), "hero", "subtitle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "subtitle" is not set for block hero`)

	out, err := runCommand(t, theme, newBlockGetCmd(), "hero", "subtitle", "--default", "none")
	require.NoError(t, err)
	assert.Equal(t, "none\n", out)
}

func TestBlockGet_BrokenConfig(t *testing.T) {
	theme := newTestTheme(t)

	_, err := runCommand(t, theme, newBlockGetCmd(), "broken", "title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestBlockInspect_JSON(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlockInspectCmd(), "gallery", "--format", "json")
	require.NoError(t, err)

	var report dto.BlockReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "gallery", report.Slug)
	assert.Equal(t, "dynamic", report.Kind)
	assert.True(t, report.ControllerOverridden)
	assert.False(t, report.ModelOverridden)
	assert.Equal(t, "/opt/pagekit/block/BaseModel.php", report.ModelFile)
	assert.True(t, strings.HasPrefix(report.ThumbURL, "https://cdn.example.com/themes/"))
}

func TestBlockInspect_RedactsSecrets(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlockInspectCmd(), "hero", "--format", "json")
	require.NoError(t, err)

	var report dto.BlockReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "Hello", report.Config["title"])
	assert.Equal(t, "[REDACTED]", report.Config["settings"].(map[string]any)["api_key"])

	out, err = runCommand(t, theme, newBlockGetCmd(), "hero", "settings.api_key")
	require.NoError(t, err)
	assert.Equal(t, "abc123\n", out)
}

func TestBlockInspect_InvalidFormat(t *testing.T) {
	theme := newTestTheme(t)

	_, err := runCommand(t, theme, newBlockInspectCmd(), "hero", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestBlockThumb(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlockThumbCmd(), "hero")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], filepath.Join(theme, "public", "block-thumbs")))
	assert.True(t, strings.HasSuffix(lines[0], ".jpg"))
	assert.True(t, strings.HasSuffix(lines[1], ".jpg"))

	out, err = runCommand(t, theme, newBlockThumbCmd(), "hero", "--url")
	require.NoError(t, err)
	assert.Equal(t, lines[1]+"\n", out)
}

func TestBlocksList_JSON(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlocksListCmd(), "--format", "json", "--compact")
	require.NoError(t, err)

	var catalog dto.CatalogReport
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	assert.Equal(t, dto.CatalogSummary{Total: 3, Dynamic: 1, Static: 1, Errors: 1}, catalog.Summary)
	assert.NotEmpty(t, catalog.Metadata.RequestID)
	require.Len(t, catalog.Blocks, 3)
	assert.Equal(t, "broken", catalog.Blocks[0].Slug)
	assert.NotEmpty(t, catalog.Blocks[0].Error)
}

func TestBlocksList_Filters(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlocksListCmd(), "--format", "json", "--kind", "dynamic")
	require.NoError(t, err)

	var catalog dto.CatalogReport
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	require.Len(t, catalog.Blocks, 1)
	assert.Equal(t, "gallery", catalog.Blocks[0].Slug)

	out, err = runCommand(t, newTestTheme(t), newBlocksListCmd(), "--format", "json", "--filter", `config.title == "Hello"`)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &catalog))
	require.Len(t, catalog.Blocks, 1)
	assert.Equal(t, "hero", catalog.Blocks[0].Slug)
}

func TestBlocksList_FailOnError(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlocksListCmd(), "--no-color", "--fail-on-error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 block(s) failed to resolve")
	assert.Contains(t, out, "Blocks: 3 total, 1 dynamic, 1 static, 1 errors")
}

func TestBlocksList_MissingTheme(t *testing.T) {
	_, err := runCommand(t, filepath.Join(t.TempDir(), "nope"), newBlocksListCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open theme")
}

func TestBlockCreate(t *testing.T) {
	theme := t.TempDir()

	out, err := runCommand(t, theme, newBlockCreateCmd(),
		"photo-grid", "--kind", "dynamic", "--controller", "--no-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created dynamic block 'photo-grid'")
	assert.Contains(t, out, "Model:      /opt/pagekit/block/BaseModel.php")

	folder := filepath.Join(theme, "blocks", "photo-grid")
	assert.FileExists(t, filepath.Join(folder, "config.yaml"))
	assert.FileExists(t, filepath.Join(folder, "view.php"))
	assert.FileExists(t, filepath.Join(folder, "controller.php"))
	assert.NoFileExists(t, filepath.Join(folder, "model.php"))

	out, err = runCommand(t, theme, newBlockGetCmd(), "photo-grid", "title")
	require.NoError(t, err)
	assert.Equal(t, "Photo Grid\n", out)
}

func TestBlockValidate(t *testing.T) {
	theme := newTestTheme(t)

	out, err := runCommand(t, theme, newBlockValidateCmd(), "hero")
	require.NoError(t, err)
	assert.Equal(t, "- hero has no config schema\n", out)

	schema := `{"type":"object","properties":{"title":{"type":"integer"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(theme, "blocks", "hero", "config.schema.json"), []byte(schema), 0o600))

	out, err = runCommand(t, theme, newBlockValidateCmd(), "hero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy config.schema.json")
	assert.Contains(t, out, "/title")

	schema = `{"type":"object","required":["title"]}`
	require.NoError(t, os.WriteFile(filepath.Join(theme, "blocks", "hero", "config.schema.json"), []byte(schema), 0o600))

	out, err = runCommand(t, theme, newBlockValidateCmd(), "hero")
	require.NoError(t, err)
	assert.Equal(t, "✓ hero config matches schema\n", out)
}

func TestVersionCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	versionCmd.SetOut(buf)
	versionCmd.Run(versionCmd, nil)
	assert.True(t, strings.HasPrefix(buf.String(), "pagekit version "))
}
