// Package templates provides embedded templates for block scaffolding.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"text/template"

	"github.com/goccy/go-yaml"
)

//go:embed block/*.tmpl
var blockTemplates embed.FS

// Template names, one per file role in a block folder.
const (
	StaticView  = "view-static"
	DynamicView = "view-dynamic"
	Config      = "config"
	Controller  = "controller"
	Model       = "model"
)

// BlockData contains the data used to render block templates.
type BlockData struct {
	// Slug is the block's folder name (e.g., "hero-banner")
	Slug string
	// Title is the human-readable name (e.g., "Hero Banner")
	Title string
	// ClassName is the PascalCase prefix for PHP classes (e.g., "HeroBanner")
	ClassName string
	// BaseController is the built-in controller the block's controller extends
	BaseController string
	// BaseModel is the built-in model the block's model extends
	BaseModel string
}

// funcs escapes values for the file type they land in. Templates use the
// built-in html func for markup.
var funcs = template.FuncMap{
	"yaml": yamlScalar,
	"php":  phpString,
}

// yamlScalar renders s as a YAML scalar that decodes back to s. The encoder's
// plain style is used when it survives a round trip, otherwise a double-quoted
// scalar.
func yamlScalar(s string) string {
	out, err := yaml.Marshal(s)
	text := strings.TrimSuffix(string(out), "\n")
	if err == nil && !strings.Contains(text, "\n") {
		var back map[string]any
		if yaml.Unmarshal([]byte("v: "+text), &back) == nil {
			if v, ok := back["v"].(string); ok && v == s {
				return text
			}
		}
	}
	// Go escapes are a subset of YAML double-quoted escapes.
	return strconv.Quote(s)
}

// phpString renders s as a single-quoted PHP string literal.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// BlockTemplates returns the parsed block templates.
func BlockTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(funcs)

	err := fs.WalkDir(blockTemplates, "block", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := blockTemplates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		// Use filename without .tmpl as template name
		name := strings.TrimPrefix(path, "block/")
		name = strings.TrimSuffix(name, ".tmpl")

		_, err = tmpl.New(name).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return tmpl, nil
}

// TemplateNames returns the templates needed for a block of the given kind.
// kind is "static" or "dynamic"; dynamic blocks may also get their own
// controller and model.
func TemplateNames(kind string, withController, withModel bool) ([]string, error) {
	switch kind {
	case "static":
		return []string{Config, StaticView}, nil
	case "dynamic":
		names := []string{Config, DynamicView}
		if withController {
			names = append(names, Controller)
		}
		if withModel {
			names = append(names, Model)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unsupported block kind: %s", kind)
	}
}
