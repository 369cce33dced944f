// Package system provides infrastructure for system-level configuration.
// This includes loading the system config file (~/.pagekit/config.yaml) and
// turning it into the layout and defaults used for block resolution.
package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pagekit-dev/pagekit/internal/domain/services"
)

// DefaultBuiltinDir is where the built-in block controller and model live
// when no builtin_dir is configured.
const DefaultBuiltinDir = "/usr/share/pagekit"

// Config represents the global configuration file (~/.pagekit/config.yaml).
type Config struct {
	Layout       LayoutConfig    `yaml:"layout"`
	Defaults     DefaultsConfig  `yaml:"defaults"`
	BuiltinDir   string          `yaml:"builtin_dir"`
	AssetBaseURL string          `yaml:"asset_base_url"`
	Catalog      CatalogConfig   `yaml:"catalog"`
	Redaction    RedactionConfig `yaml:"redaction"`
}

// LayoutConfig overrides block folder file names. Empty fields keep the
// conventional names.
type LayoutConfig struct {
	ConfigFiles     []string `yaml:"config_files"`
	SchemaFile      string   `yaml:"schema_file"`
	ControllerFile  string   `yaml:"controller_file"`
	ModelFile       string   `yaml:"model_file"`
	DynamicView     string   `yaml:"dynamic_view"`
	StaticView      string   `yaml:"static_view"`
	ThumbsDir       string   `yaml:"thumbs_dir"`
	ThumbsPublicDir string   `yaml:"thumbs_public_dir"`
	ThumbExt        string   `yaml:"thumb_ext"`
}

// DefaultsConfig points at the built-in files blocks inherit. Empty fields
// are derived from BuiltinDir.
type DefaultsConfig struct {
	ControllerFile string `yaml:"controller_file"`
	ModelFile      string `yaml:"model_file"`
}

// CatalogConfig tunes theme-wide block listings.
type CatalogConfig struct {
	// MaxConcurrent limits parallel block resolution (0 = number of CPUs)
	MaxConcurrent int `yaml:"max_concurrent"`
}

// RedactionConfig controls how secrets in block config are masked in reports.
type RedactionConfig struct {
	Patterns        []string `yaml:"patterns"`
	Keys            []string `yaml:"keys"`
	Salt            string   `yaml:"salt"`
	HashMode        bool     `yaml:"hash_mode"`
	DisableGitleaks bool     `yaml:"disable_gitleaks"`
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	layout := services.DefaultLayout()
	return &Config{
		BuiltinDir:   DefaultBuiltinDir,
		AssetBaseURL: "/",
		Layout: LayoutConfig{
			ConfigFiles:     layout.ConfigFiles,
			SchemaFile:      layout.SchemaFile,
			ControllerFile:  layout.ControllerFile,
			ModelFile:       layout.ModelFile,
			DynamicView:     layout.DynamicView,
			StaticView:      layout.StaticView,
			ThumbsDir:       layout.ThumbsDir,
			ThumbsPublicDir: layout.ThumbsPublicDir,
			ThumbExt:        layout.ThumbExt,
		},
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig() with safe defaults.
// This allows pagekit to work out-of-the-box without configuration.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}

	return config, nil
}

// DefaultPath returns ~/.pagekit/config.yaml, or "" if there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pagekit", "config.yaml")
}

// ToLayout converts the layout section, filling unset names with conventions.
func (c *Config) ToLayout() services.Layout {
	return services.Layout{
		ConfigFiles:     c.Layout.ConfigFiles,
		SchemaFile:      c.Layout.SchemaFile,
		ControllerFile:  c.Layout.ControllerFile,
		ModelFile:       c.Layout.ModelFile,
		DynamicView:     c.Layout.DynamicView,
		StaticView:      c.Layout.StaticView,
		ThumbsDir:       c.Layout.ThumbsDir,
		ThumbsPublicDir: c.Layout.ThumbsPublicDir,
		ThumbExt:        c.Layout.ThumbExt,
	}.WithDefaults()
}

// ToDefaults returns the built-in controller and model paths.
func (c *Config) ToDefaults() services.Defaults {
	dir := c.BuiltinDir
	if dir == "" {
		dir = DefaultBuiltinDir
	}

	d := services.Defaults{
		ControllerFile: c.Defaults.ControllerFile,
		ModelFile:      c.Defaults.ModelFile,
	}
	if d.ControllerFile == "" {
		d.ControllerFile = filepath.Join(dir, "block", "BaseController.php")
	}
	if d.ModelFile == "" {
		d.ModelFile = filepath.Join(dir, "block", "BaseModel.php")
	}
	return d
}
