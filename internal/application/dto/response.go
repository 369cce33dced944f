package dto

import (
	"time"

	"github.com/pagekit-dev/pagekit/internal/domain/values"
)

// BlockReport describes how one block resolved.
type BlockReport struct {
	Config               map[string]any   `json:"config,omitempty" yaml:"config,omitempty"`
	ThumbKey             *values.ThumbKey `json:"thumb_key,omitempty" yaml:"thumb_key,omitempty"`
	Slug                 string           `json:"slug" yaml:"slug"`
	Folder               string           `json:"folder" yaml:"folder"`
	Kind                 string           `json:"kind,omitempty" yaml:"kind,omitempty"`
	ViewFile             string           `json:"view_file,omitempty" yaml:"view_file,omitempty"`
	ControllerFile       string           `json:"controller_file,omitempty" yaml:"controller_file,omitempty"`
	ModelFile            string           `json:"model_file,omitempty" yaml:"model_file,omitempty"`
	ConfigFile           string           `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	SchemaFile           string           `json:"schema_file,omitempty" yaml:"schema_file,omitempty"`
	ThumbPath            string           `json:"thumb_path,omitempty" yaml:"thumb_path,omitempty"`
	ThumbURL             string           `json:"thumb_url,omitempty" yaml:"thumb_url,omitempty"`
	Error                string           `json:"error,omitempty" yaml:"error,omitempty"`
	ViewExists           bool             `json:"view_exists" yaml:"view_exists"`
	ControllerOverridden bool             `json:"controller_overridden" yaml:"controller_overridden"`
	ModelOverridden      bool             `json:"model_overridden" yaml:"model_overridden"`
}

// CatalogReport is the result of listing every block of a theme.
type CatalogReport struct {
	ThemeRoot string           `json:"theme_root" yaml:"theme_root"`
	Blocks    []BlockReport    `json:"blocks" yaml:"blocks"`
	Metadata  ResponseMetadata `json:"metadata" yaml:"metadata"`
	Summary   CatalogSummary   `json:"summary" yaml:"summary"`
}

// CatalogSummary aggregates a catalog listing.
type CatalogSummary struct {
	Total   int `json:"total" yaml:"total"`
	Dynamic int `json:"dynamic" yaml:"dynamic"`
	Static  int `json:"static" yaml:"static"`
	Errors  int `json:"errors" yaml:"errors"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	// RequestID from the original request
	RequestID string `json:"request_id" yaml:"request_id"`

	// Duration is how long the request took
	Duration time.Duration `json:"duration" yaml:"duration"`
}
