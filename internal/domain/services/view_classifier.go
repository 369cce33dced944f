package services

import "path/filepath"

// FileProber reports whether a regular file exists at path.
type FileProber interface {
	Exists(path string) bool
}

// ViewVariant distinguishes code-capable views from markup-only views.
type ViewVariant string

const (
	// ViewDynamic is a view that may contain executable templating logic.
	ViewDynamic ViewVariant = "dynamic"
	// ViewStatic is plain markup.
	ViewStatic ViewVariant = "static"
)

// BlockKind is the classification of a block folder: Dynamic(path) or Static(path).
type BlockKind struct {
	Variant ViewVariant
	Path    string
}

// IsDynamic reports whether the block has a code-capable view.
func (k BlockKind) IsDynamic() bool {
	return k.Variant == ViewDynamic
}

// IsStatic reports whether the block is markup-only.
func (k BlockKind) IsStatic() bool {
	return k.Variant == ViewStatic
}

// ClassifyView decides the kind of the block in folder from file existence.
// The static path is returned whether or not it exists.
func ClassifyView(folder string, layout Layout, fs FileProber) BlockKind {
	dynamic := filepath.Join(folder, layout.DynamicView)
	if fs.Exists(dynamic) {
		return BlockKind{Variant: ViewDynamic, Path: dynamic}
	}
	return BlockKind{Variant: ViewStatic, Path: filepath.Join(folder, layout.StaticView)}
}

// ResolveOverride returns folder/name if it exists, otherwise fallback.
func ResolveOverride(folder, name, fallback string, fs FileProber) (string, bool) {
	candidate := filepath.Join(folder, name)
	if fs.Exists(candidate) {
		return candidate, true
	}
	return fallback, false
}
