// Package services contains the application use cases of block resolution.
package services

import (
	"fmt"
	"log/slog"
	"path/filepath"

	apperrors "github.com/pagekit-dev/pagekit/internal/application/errors"
	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/pagekit-dev/pagekit/internal/domain/blockconfig"
	"github.com/pagekit-dev/pagekit/internal/domain/entities"
	"github.com/pagekit-dev/pagekit/internal/domain/services"
	"github.com/pagekit-dev/pagekit/internal/domain/values"
)

// BlocksDir is the folder under a theme root that holds one folder per block.
const BlocksDir = "blocks"

// BlockDeps are the collaborators shared by every ThemeBlock.
type BlockDeps struct {
	FS           ports.FileSystem
	ConfigLoader ports.BlockConfigLoader
	Logger       *slog.Logger
	Defaults     services.Defaults
	Layout       services.Layout
}

// ThemeBlock resolves the files, configuration and thumbnail of one block
// within one theme. Configuration is loaded once at construction; every other
// answer is derived from the filesystem on each call.
type ThemeBlock struct {
	theme      ports.Theme
	assets     ports.AssetResolver
	config     *blockconfig.Tree
	deps       BlockDeps
	slug       values.BlockSlug
	configFile string
}

// NewThemeBlock resolves slug within theme and loads the block's config.
// A malformed config file fails construction with *entities.ConfigLoadError.
// assets may be nil when thumbnail URLs are not needed.
func NewThemeBlock(theme ports.Theme, assets ports.AssetResolver, slug string, deps BlockDeps) (*ThemeBlock, error) {
	if theme == nil {
		return nil, apperrors.NewValidationError("theme", "theme is required")
	}
	if deps.FS == nil || deps.ConfigLoader == nil {
		return nil, apperrors.NewConfigurationError("block", "filesystem and config loader are required", nil)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Layout = deps.Layout.WithDefaults()

	blockSlug, err := values.NewBlockSlug(slug)
	if err != nil {
		return nil, err
	}

	b := &ThemeBlock{
		theme:  theme,
		assets: assets,
		slug:   blockSlug,
		deps:   deps,
	}

	tree, file, err := deps.ConfigLoader.Load(b.Folder())
	if err != nil {
		return nil, entities.NewConfigLoadError(blockSlug.String(), file, err)
	}
	if tree == nil {
		tree = blockconfig.Empty()
	}
	b.config = tree
	b.configFile = file

	deps.Logger.Debug("block resolved",
		"slug", blockSlug.String(),
		"folder", b.Folder(),
		"config_file", file,
		"config_keys", tree.Len())

	return b, nil
}

// Slug returns the slug as supplied.
func (b *ThemeBlock) Slug() string {
	return b.slug.String()
}

// Folder returns <themeRoot>/blocks/<sanitized slug>.
func (b *ThemeBlock) Folder() string {
	return filepath.Join(b.theme.RootFolder(), BlocksDir, b.slug.FolderName())
}

// ConfigFile returns the config file that was loaded, or "" if none existed.
func (b *ThemeBlock) ConfigFile() string {
	return b.configFile
}

// ControllerFile returns the block's controller, or the built-in default.
func (b *ThemeBlock) ControllerFile() string {
	path, overridden := services.ResolveOverride(b.Folder(), b.deps.Layout.ControllerFile, b.deps.Defaults.ControllerFile, b.deps.FS)
	if !overridden {
		b.deps.Logger.Debug("using default controller", "slug", b.Slug(), "path", path)
	}
	return path
}

// ModelFile returns the block's model, or the built-in default.
func (b *ThemeBlock) ModelFile() string {
	path, overridden := services.ResolveOverride(b.Folder(), b.deps.Layout.ModelFile, b.deps.Defaults.ModelFile, b.deps.FS)
	if !overridden {
		b.deps.Logger.Debug("using default model", "slug", b.Slug(), "path", path)
	}
	return path
}

// HasOwnController reports whether the block overrides the default controller.
func (b *ThemeBlock) HasOwnController() bool {
	return b.deps.FS.Exists(filepath.Join(b.Folder(), b.deps.Layout.ControllerFile))
}

// HasOwnModel reports whether the block overrides the default model.
func (b *ThemeBlock) HasOwnModel() bool {
	return b.deps.FS.Exists(filepath.Join(b.Folder(), b.deps.Layout.ModelFile))
}

// Kind classifies the block as Dynamic(path) or Static(path).
func (b *ThemeBlock) Kind() services.BlockKind {
	return services.ClassifyView(b.Folder(), b.deps.Layout, b.deps.FS)
}

// IsPHPBlock reports whether the block has a code-capable view.
func (b *ThemeBlock) IsPHPBlock() bool {
	return b.Kind().IsDynamic()
}

// IsHTMLBlock reports whether the block is plain markup.
func (b *ThemeBlock) IsHTMLBlock() bool {
	return !b.IsPHPBlock()
}

// ViewFile returns the active view file. When neither view exists it
// returns the static path together with *entities.MissingViewError.
func (b *ThemeBlock) ViewFile() (string, error) {
	kind := b.Kind()
	if kind.IsStatic() && !b.deps.FS.Exists(kind.Path) {
		return kind.Path, entities.NewMissingViewError(b.Slug(), b.Folder(),
			b.deps.Layout.DynamicView, b.deps.Layout.StaticView)
	}
	return kind.Path, nil
}

// ThumbKey derives the content-addressed thumbnail key from the slug and the
// current bytes of the active view file.
func (b *ThemeBlock) ThumbKey() (values.ThumbKey, error) {
	view, err := b.ViewFile()
	if err != nil {
		return values.ThumbKey{}, err
	}
	data, err := b.deps.FS.ReadFile(view)
	if err != nil {
		return values.ThumbKey{}, apperrors.NewResolutionError(b.Slug(), "failed to read view file", err)
	}
	return values.NewThumbKey(b.slug, data), nil
}

// ThumbPath returns <themeRoot>/public/block-thumbs/<slug hash>/<view hash>.jpg.
func (b *ThemeBlock) ThumbPath() (string, error) {
	key, err := b.ThumbKey()
	if err != nil {
		return "", err
	}
	layout := b.deps.Layout
	return filepath.Join(b.theme.RootFolder(), filepath.FromSlash(layout.ThumbsDir), key.BlockHash, key.FileName(layout.ThumbExt)), nil
}

// ThumbURL returns the public URL of the block's thumbnail.
func (b *ThemeBlock) ThumbURL() (string, error) {
	if b.assets == nil {
		return "", apperrors.NewConfigurationError("assets", "no asset resolver configured", nil)
	}
	key, err := b.ThumbKey()
	if err != nil {
		return "", err
	}
	layout := b.deps.Layout
	return b.assets.ResolvePublicAssetURL(key.RelativePath(layout.ThumbsPublicDir, layout.ThumbExt)), nil
}

// SchemaFile returns the block's config schema path and whether it exists.
func (b *ThemeBlock) SchemaFile() (string, bool) {
	path := filepath.Join(b.Folder(), b.deps.Layout.SchemaFile)
	return path, b.deps.FS.Exists(path)
}

// ValidateConfig checks the block config against the block's schema file.
// checked is false when the block has no schema.
func (b *ThemeBlock) ValidateConfig(validator ports.ConfigSchemaValidator) (checked bool, err error) {
	path, ok := b.SchemaFile()
	if !ok {
		return false, nil
	}
	schema, err := b.deps.FS.ReadFile(path)
	if err != nil {
		return false, apperrors.NewResolutionError(b.Slug(), "failed to read config schema", err)
	}
	violations, err := validator.ValidateConfig(schema, b.Config())
	if err != nil {
		return false, apperrors.NewResolutionError(b.Slug(), "invalid config schema", err)
	}
	if len(violations) > 0 {
		return true, apperrors.NewValidationError("config",
			fmt.Sprintf("block %s config does not satisfy %s", b.Slug(), b.deps.Layout.SchemaFile),
			violations...)
	}
	b.deps.Logger.Debug("config matches schema", "slug", b.Slug(), "schema", path)
	return true, nil
}

// Get reads key from the block config using dot notation ("a.b.c").
// Absence is reported with ok=false and is never an error.
func (b *ThemeBlock) Get(key string) (blockconfig.Value, bool) {
	return b.config.Get(key)
}

// GetString is Get for scalar values, returning def when absent.
func (b *ThemeBlock) GetString(key, def string) string {
	v, ok := b.Get(key)
	if !ok || v.Kind() != blockconfig.KindScalar {
		return def
	}
	return v.String()
}

// Config returns a copy of the whole configuration.
func (b *ThemeBlock) Config() map[string]any {
	return b.config.Native()
}

func (b *ThemeBlock) String() string {
	return fmt.Sprintf("block %s (%s)", b.Slug(), b.Folder())
}

// BlockFactory builds ThemeBlocks that share the same collaborators.
type BlockFactory struct {
	deps BlockDeps
}

// NewBlockFactory creates a new block factory.
func NewBlockFactory(deps BlockDeps) *BlockFactory {
	return &BlockFactory{deps: deps}
}

// New resolves slug within theme.
func (f *BlockFactory) New(theme ports.Theme, assets ports.AssetResolver, slug string) (*ThemeBlock, error) {
	return NewThemeBlock(theme, assets, slug, f.deps)
}

// Deps returns the collaborators shared by the blocks this factory builds.
func (f *BlockFactory) Deps() BlockDeps {
	return f.deps
}
