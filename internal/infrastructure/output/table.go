package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pagekit-dev/pagekit/internal/application/dto"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats block reports as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// FormatBlock writes one block report.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) FormatBlock(r *dto.BlockReport) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Block: %s %s\n", f.colorize(r.Slug, colorBold), f.kindLabel(r))
	fmt.Fprintf(f.writer, "  Folder:     %s\n", r.Folder)
	if r.ViewFile != "" {
		fmt.Fprintf(f.writer, "  View:       %s\n", r.ViewFile)
	}
	if r.ControllerFile != "" {
		fmt.Fprintf(f.writer, "  Controller: %s%s\n", r.ControllerFile, f.defaultMarker(r.ControllerOverridden))
		fmt.Fprintf(f.writer, "  Model:      %s%s\n", r.ModelFile, f.defaultMarker(r.ModelOverridden))
	}
	if r.ConfigFile != "" {
		fmt.Fprintf(f.writer, "  Config:     %s (%d keys)\n", r.ConfigFile, len(r.Config))
		keys := make([]string, 0, len(r.Config))
		for k := range r.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "    - %s: %v\n", k, r.Config[k])
		}
	}
	if r.ThumbKey != nil {
		fmt.Fprintf(f.writer, "  Thumb key:  %s\n", r.ThumbKey.String())
		fmt.Fprintf(f.writer, "  Thumb path: %s\n", r.ThumbPath)
	}
	if r.ThumbURL != "" {
		fmt.Fprintf(f.writer, "  Thumb URL:  %s\n", r.ThumbURL)
	}
	if r.Error != "" {
		fmt.Fprintf(f.writer, "  %s %s\n", f.colorize("Error:", colorRed), r.Error)
	}
	return nil
}

// FormatCatalog writes one line per block followed by a summary.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) FormatCatalog(c *dto.CatalogReport) error {
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	fmt.Fprintf(f.writer, "Theme: %s\n", f.colorize(c.ThemeRoot, colorBold))
	fmt.Fprintf(f.writer, "Listed: %s in %s\n",
		c.Metadata.ProcessedAt.Format(time.RFC3339), c.Metadata.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(c.Blocks) == 0 {
		fmt.Fprintln(f.writer, "No blocks found.")
	}

	for i := range c.Blocks {
		b := &c.Blocks[i]
		line := fmt.Sprintf("%s %-24s %s", f.statusSymbol(b), b.Slug, f.kindLabel(b))
		if b.Error != "" {
			line += "  " + f.colorize(b.Error, colorRed)
		}
		fmt.Fprintln(f.writer, line)
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	s := c.Summary
	fmt.Fprintf(f.writer, "Blocks: %d total, %d dynamic, %d static, %d errors",
		s.Total, s.Dynamic, s.Static, s.Errors)
	if s.Skipped > 0 {
		fmt.Fprintf(f.writer, ", %d filtered out", s.Skipped)
	}
	fmt.Fprintln(f.writer)
	return nil
}

func (f *TableFormatter) kindLabel(r *dto.BlockReport) string {
	switch r.Kind {
	case "dynamic":
		return f.colorize("[dynamic]", colorCyan)
	case "static":
		return f.colorize("[static]", colorGreen)
	default:
		return f.colorize("[unknown]", colorYellow)
	}
}

func (f *TableFormatter) defaultMarker(overridden bool) string {
	if overridden {
		return ""
	}
	return f.colorize(" (default)", colorGray)
}

func (f *TableFormatter) statusSymbol(r *dto.BlockReport) string {
	if r.Error != "" {
		return f.colorize("✗", colorRed)
	}
	return f.colorize("✓", colorGreen)
}
