// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/pagekit-dev/pagekit/internal/application/dto"
	"github.com/pagekit-dev/pagekit/internal/domain/blockconfig"
)

// Theme is the theme a block belongs to. Only its root folder is consumed.
type Theme interface {
	RootFolder() string
}

// AssetResolver turns a path relative to a theme's public folder into a URL.
type AssetResolver interface {
	ResolvePublicAssetURL(relativePath string) string
}

// FileSystem is the read-only view of the disk used during resolution.
type FileSystem interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)
	// ListDirs returns the names of the sub-directories of dir, sorted.
	ListDirs(dir string) ([]string, error)
}

// BlockConfigLoader loads the declarative configuration of a block folder.
type BlockConfigLoader interface {
	// Load returns the parsed config and the file it came from. A folder
	// without a config file yields an empty tree and an empty path.
	Load(folder string) (*blockconfig.Tree, string, error)
}

// FileWatcher calls onChange with the path of any watched file that is
// written or created, until ctx is cancelled.
type FileWatcher interface {
	Watch(ctx context.Context, dir string, names []string, onChange func(path string)) error
}

// OutputFormatter formats block reports.
type OutputFormatter interface {
	FormatBlock(report *dto.BlockReport) error
	FormatCatalog(catalog *dto.CatalogReport) error
}

// FormatterOptions tunes formatter output.
type FormatterOptions struct {
	Indent bool
	Color  bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}

// ConfigRedactor masks secrets in block configuration before it is reported.
type ConfigRedactor interface {
	RedactConfig(cfg map[string]any) map[string]any
}

// ConfigSchemaValidator checks block configuration against a JSON Schema document.
// Violations are returned as messages; err is reserved for unusable schemas.
type ConfigSchemaValidator interface {
	ValidateConfig(schema []byte, config map[string]any) (violations []string, err error)
}

// PublicTheme is a theme that also resolves URLs of its public assets.
type PublicTheme interface {
	Theme
	AssetResolver
}
