package output

import (
	"encoding/json"
	"io"

	"github.com/pagekit-dev/pagekit/internal/application/dto"
)

// JSONFormatter formats block reports as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// FormatBlock writes one block report as JSON.
func (f *JSONFormatter) FormatBlock(report *dto.BlockReport) error {
	return f.encode(report)
}

// FormatCatalog writes a catalog report as JSON.
func (f *JSONFormatter) FormatCatalog(catalog *dto.CatalogReport) error {
	return f.encode(catalog)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
