package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/spf13/cobra"
)

var validFormats = []string{"table", "json", "yaml"}

// CommonOptions contains flags shared across report commands.
type CommonOptions struct {
	// Output
	Format string

	// Execution
	Timeout time.Duration

	// Flags (bools grouped for alignment)
	NoColor bool
	Compact bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Timeout: 2 * time.Minute,
		Format:  "table",
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Global timeout for entire execution (0 to disable)")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: "+strings.Join(validFormats, ", "))
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false,
		"Disable colored table output")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false,
		"Emit JSON on a single line")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}

	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", opts.Format, strings.Join(validFormats, ", "))
	}

	return nil
}

// FormatterOptions converts output flags for the formatter factory.
func (opts *CommonOptions) FormatterOptions() ports.FormatterOptions {
	return ports.FormatterOptions{
		Indent: !opts.Compact,
		Color:  !opts.NoColor,
	}
}
