package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/pagekit-dev/pagekit/internal/application/services"
	domainservices "github.com/pagekit-dev/pagekit/internal/domain/services"
	"github.com/pagekit-dev/pagekit/internal/domain/values"
	"github.com/pagekit-dev/pagekit/internal/templates"
	"github.com/spf13/cobra"
)

// CreateBlockOptions holds options for the block create command.
type CreateBlockOptions struct {
	slug           string
	kind           string
	title          string
	withController bool
	withModel      bool
	force          bool
	noInteractive  bool
}

func newBlockCreateCmd() *cobra.Command {
	opts := &CreateBlockOptions{}

	cmd := &cobra.Command{
		Use:   "create <slug>",
		Short: "Create a new block scaffold",
		Long: `Generate a block folder with a config file and a view. Dynamic blocks may
also get their own controller and model extending the built-in ones.

Without --no-interactive, missing choices are asked for in the terminal.`,
		Example: `  # Static block
  pagekit block create hero --kind static --no-interactive

  # Dynamic block with its own controller
  pagekit block create gallery --kind dynamic --controller`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			opts.slug = args[0]

			if !opts.noInteractive {
				if err := promptBlockOptions(cmd, opts); err != nil {
					return err
				}
			}

			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			deps := ctx.Container.BlockFactory().Deps()
			created, err := createBlock(th.RootFolder(), opts, deps.Layout, deps.Defaults)
			if err != nil {
				return err
			}

			block, err := ctx.Container.BlockFactory().New(th, th, opts.slug)
			if err != nil {
				return fmt.Errorf("created block does not resolve: %w", err)
			}

			printCreated(cmd.OutOrStdout(), block, created)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "Block kind: static or dynamic (default: static)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Block title (default: derived from slug)")
	cmd.Flags().BoolVar(&opts.withController, "controller", false, "Give a dynamic block its own controller")
	cmd.Flags().BoolVar(&opts.withModel, "model", false, "Give a dynamic block its own model")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&opts.noInteractive, "no-interactive", false, "Never prompt, use flags and defaults")

	return cmd
}

func promptBlockOptions(cmd *cobra.Command, opts *CreateBlockOptions) error {
	if opts.kind == "" {
		err := huh.NewSelect[string]().
			Title("Block kind").
			Options(
				huh.NewOption("Static (plain HTML view)", string(domainservices.ViewStatic)),
				huh.NewOption("Dynamic (PHP view with controller and model)", string(domainservices.ViewDynamic)),
			).
			Value(&opts.kind).
			Run()
		if err != nil {
			return err
		}
	}

	if opts.title == "" {
		opts.title = toTitleCase(opts.slug)
		err := huh.NewInput().
			Title("Block title").
			Value(&opts.title).
			Run()
		if err != nil {
			return err
		}
	}

	if opts.kind != string(domainservices.ViewDynamic) {
		return nil
	}

	if !cmd.Flags().Changed("controller") {
		err := huh.NewConfirm().
			Title("Add a block-specific controller?").
			Value(&opts.withController).
			Run()
		if err != nil {
			return err
		}
	}

	if !cmd.Flags().Changed("model") {
		err := huh.NewConfirm().
			Title("Add a block-specific model?").
			Value(&opts.withModel).
			Run()
		if err != nil {
			return err
		}
	}

	return nil
}

// createBlock renders the block templates into <root>/blocks/<slug> and
// returns the written paths.
func createBlock(root string, opts *CreateBlockOptions, layout domainservices.Layout, defaults domainservices.Defaults) ([]string, error) {
	slug, err := values.NewBlockSlug(opts.slug)
	if err != nil {
		return nil, err
	}
	if slug.FolderName() != opts.slug {
		return nil, fmt.Errorf("invalid block slug %q: must be a plain folder name", opts.slug)
	}

	if opts.kind == "" {
		opts.kind = string(domainservices.ViewStatic)
	}
	if opts.title == "" {
		opts.title = toTitleCase(opts.slug)
	}

	names, err := templates.TemplateNames(opts.kind, opts.withController, opts.withModel)
	if err != nil {
		return nil, err
	}

	tmpl, err := templates.BlockTemplates()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	data := templates.BlockData{
		Slug:           opts.slug,
		Title:          opts.title,
		ClassName:      toClassName(opts.slug),
		BaseController: defaults.ControllerFile,
		BaseModel:      defaults.ModelFile,
	}

	folder := filepath.Join(root, services.BlocksDir, slug.FolderName())
	layout = layout.WithDefaults()

	// Render and check every file before writing any of them.
	paths := make([]string, 0, len(names))
	contents := make([][]byte, 0, len(names))
	for _, name := range names {
		outputPath := filepath.Join(folder, targetFileName(name, layout))

		if !opts.force {
			if _, err := os.Stat(outputPath); err == nil {
				return nil, fmt.Errorf("file already exists: %s (use --force to overwrite)", outputPath)
			}
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}

		paths = append(paths, outputPath)
		contents = append(contents, buf.Bytes())
	}

	if err := os.MkdirAll(folder, 0o750); err != nil {
		return nil, fmt.Errorf("creating block directory: %w", err)
	}

	created := make([]string, 0, len(paths))
	for i, outputPath := range paths {
		//nolint:gosec // G306: theme files are served by the web server and need to be world-readable
		if err := os.WriteFile(outputPath, contents[i], 0o644); err != nil {
			return created, fmt.Errorf("writing %s: %w", outputPath, err)
		}

		slog.Debug("created file", "path", outputPath)
		created = append(created, outputPath)
	}

	return created, nil
}

// targetFileName maps a template to its file name in the block folder.
func targetFileName(name string, layout domainservices.Layout) string {
	switch name {
	case templates.StaticView:
		return layout.StaticView
	case templates.DynamicView:
		return layout.DynamicView
	case templates.Controller:
		return layout.ControllerFile
	case templates.Model:
		return layout.ModelFile
	default:
		// The config template is YAML
		for _, f := range layout.ConfigFiles {
			if ext := filepath.Ext(f); ext == ".yaml" || ext == ".yml" {
				return f
			}
		}
		return "config.yaml"
	}
}

//nolint:errcheck // best-effort terminal output
func printCreated(w io.Writer, block *services.ThemeBlock, created []string) {
	fmt.Fprintf(w, "✓ Created %s block '%s' in %s\n\n", block.Kind().Variant, block.Slug(), block.Folder())
	for _, path := range created {
		fmt.Fprintf(w, "  %s\n", filepath.Base(path))
	}
	fmt.Fprintf(w, "\nController: %s\n", block.ControllerFile())
	fmt.Fprintf(w, "Model:      %s\n", block.ModelFile())
	if path, err := block.ThumbPath(); err == nil {
		fmt.Fprintf(w, "Thumbnail:  %s\n", path)
	}
}

// toTitleCase converts "hero-banner" to "Hero Banner".
func toTitleCase(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// toClassName converts "hero-banner" to "HeroBanner".
func toClassName(slug string) string {
	var b strings.Builder
	for _, w := range strings.Fields(toTitleCase(slug)) {
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "Block" + name
	}
	return name
}
