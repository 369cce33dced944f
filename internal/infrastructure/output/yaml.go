package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/pagekit-dev/pagekit/internal/application/dto"
)

// YAMLFormatter formats block reports as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// FormatBlock writes one block report as YAML.
func (f *YAMLFormatter) FormatBlock(report *dto.BlockReport) error {
	return f.encode(report)
}

// FormatCatalog writes a catalog report as YAML.
func (f *YAMLFormatter) FormatCatalog(catalog *dto.CatalogReport) error {
	return f.encode(catalog)
}

// FormatValue writes any value as YAML.
func (f *YAMLFormatter) FormatValue(v any) error {
	return f.encode(v)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2), yaml.IndentSequence(true))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
