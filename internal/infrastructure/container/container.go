// Package container provides dependency injection for the application.
package container

import (
	"log/slog"

	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/pagekit-dev/pagekit/internal/application/services"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/config"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/filesystem"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/output"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/redaction"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/system"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/theme"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/validation"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/watcher"
)

// Container holds all application dependencies.
type Container struct {
	blockFactory     *services.BlockFactory
	blockCatalog     *services.BlockCatalog
	fileWatcher      ports.FileWatcher
	schemaValidator  ports.ConfigSchemaValidator
	formatterFactory ports.OutputFormatterFactory
	systemCfg        *system.Config
	logger           *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	// BuiltinDir and AssetBaseURL take precedence over the config file when set.
	BuiltinDir   string
	AssetBaseURL string
	// ShowSecrets disables redaction of block config in reports.
	ShowSecrets bool
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	configPath := opts.SystemConfigPath
	if configPath == "" {
		configPath = system.DefaultPath()
	}

	systemCfg, err := system.NewConfigLoader().Load(configPath)
	if err != nil {
		return nil, err
	}

	// Command-line flags take precedence over config file
	if opts.BuiltinDir != "" {
		systemCfg.BuiltinDir = opts.BuiltinDir
		systemCfg.Defaults = system.DefaultsConfig{}
	}
	if opts.AssetBaseURL != "" {
		systemCfg.AssetBaseURL = opts.AssetBaseURL
	}

	layout := systemCfg.ToLayout()

	deps := services.BlockDeps{
		FS:           filesystem.NewOSFileSystem(),
		ConfigLoader: config.NewBlockConfigLoader(opts.Logger, layout.ConfigFiles...),
		Logger:       opts.Logger,
		Defaults:     systemCfg.ToDefaults(),
		Layout:       layout,
	}

	factory := services.NewBlockFactory(deps)
	catalog := services.NewBlockCatalog(factory, opts.Logger)

	if !opts.ShowSecrets {
		redactor, err := redaction.New(redaction.Config{
			Patterns:        systemCfg.Redaction.Patterns,
			Keys:            systemCfg.Redaction.Keys,
			Salt:            systemCfg.Redaction.Salt,
			HashMode:        systemCfg.Redaction.HashMode,
			DisableGitleaks: systemCfg.Redaction.DisableGitleaks,
		})
		if err != nil {
			return nil, err
		}
		catalog.WithRedactor(redactor)
	}

	return &Container{
		blockFactory:     factory,
		blockCatalog:     catalog,
		fileWatcher:      watcher.New(opts.Logger, watcher.DefaultDebounce),
		schemaValidator:  validation.NewSchemaValidator(),
		formatterFactory: output.NewFormatterFactory(),
		systemCfg:        systemCfg,
		logger:           opts.Logger,
	}, nil
}

// OpenTheme opens the theme rooted at root using the configured asset base URL.
func (c *Container) OpenTheme(root string) (*theme.DirTheme, error) {
	return theme.Open(root, c.systemCfg.AssetBaseURL)
}

// BlockFactory returns the factory used to construct single blocks.
func (c *Container) BlockFactory() *services.BlockFactory {
	return c.blockFactory
}

// BlockCatalog returns the theme-wide block catalog service.
func (c *Container) BlockCatalog() *services.BlockCatalog {
	return c.blockCatalog
}

// FileWatcher returns the watcher used to follow view edits.
func (c *Container) FileWatcher() ports.FileWatcher {
	return c.fileWatcher
}

// SchemaValidator returns the block config schema validator.
func (c *Container) SchemaValidator() ports.ConfigSchemaValidator {
	return c.schemaValidator
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// SystemConfig returns the effective system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the application logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
