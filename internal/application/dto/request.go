// Package dto contains data transfer objects for application layer use cases.
package dto

// ListBlocksRequest encapsulates the inputs needed to list a theme's blocks.
type ListBlocksRequest struct {
	ThemeRoot string
	Metadata  RequestMetadata
	Filters   FilterOptions
	// MaxConcurrent limits parallel block resolution (0 = number of CPUs)
	MaxConcurrent int
}

// FilterOptions defines filters for block selection.
type FilterOptions struct {
	FilterExpression string
	Kinds            []string
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
