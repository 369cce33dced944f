// Package services contains the pure decision logic of block resolution:
// folder layout, view classification and block filtering.
package services

// Layout names the files that make up a block folder.
type Layout struct {
	// ConfigFiles are tried in order; the first that exists is loaded.
	ConfigFiles []string
	// SchemaFile is an optional JSON Schema the config must satisfy.
	SchemaFile string

	ControllerFile string
	ModelFile      string

	// DynamicView marks a code-capable block when present.
	DynamicView string
	// StaticView is the markup-only view used otherwise.
	StaticView string

	// ThumbsDir is relative to the theme root; ThumbsPublicDir is the same
	// folder relative to the theme's public asset root.
	ThumbsDir       string
	ThumbsPublicDir string
	ThumbExt        string
}

// Defaults are the built-in files a block inherits when it does not override them.
type Defaults struct {
	ControllerFile string
	ModelFile      string
}

// DefaultLayout returns the conventional block folder layout.
func DefaultLayout() Layout {
	return Layout{
		ConfigFiles:     []string{"config.yaml", "config.yml", "config.json", "config.hcl"},
		SchemaFile:      "config.schema.json",
		ControllerFile:  "controller.php",
		ModelFile:       "model.php",
		DynamicView:     "view.php",
		StaticView:      "view.html",
		ThumbsDir:       "public/block-thumbs",
		ThumbsPublicDir: "block-thumbs",
		ThumbExt:        ".jpg",
	}
}

// WithDefaults fills zero fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if len(l.ConfigFiles) == 0 {
		l.ConfigFiles = d.ConfigFiles
	}
	if l.SchemaFile == "" {
		l.SchemaFile = d.SchemaFile
	}
	if l.ControllerFile == "" {
		l.ControllerFile = d.ControllerFile
	}
	if l.ModelFile == "" {
		l.ModelFile = d.ModelFile
	}
	if l.DynamicView == "" {
		l.DynamicView = d.DynamicView
	}
	if l.StaticView == "" {
		l.StaticView = d.StaticView
	}
	if l.ThumbsDir == "" {
		l.ThumbsDir = d.ThumbsDir
	}
	if l.ThumbsPublicDir == "" {
		l.ThumbsPublicDir = d.ThumbsPublicDir
	}
	if l.ThumbExt == "" {
		l.ThumbExt = d.ThumbExt
	}
	return l
}
