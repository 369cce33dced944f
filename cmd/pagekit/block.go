package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "github.com/pagekit-dev/pagekit/internal/application/errors"
	"github.com/pagekit-dev/pagekit/internal/domain/blockconfig"
	"github.com/pagekit-dev/pagekit/internal/domain/values"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newBlockCmd())
}

func newBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Work with a single block",
		Long:  `Inspect, query, watch or create one block of a theme.`,
	}

	cmd.AddCommand(
		newBlockInspectCmd(),
		newBlockGetCmd(),
		newBlockThumbCmd(),
		newBlockWatchCmd(),
		newBlockValidateCmd(),
		newBlockCreateCmd(),
	)

	return cmd
}

func newBlockInspectCmd() *cobra.Command {
	opts := DefaultCommonOptions()

	cmd := &cobra.Command{
		Use:   "inspect <slug>",
		Short: "Show how a block resolves",
		Long: `Resolve a block and report its kind, view, controller, model, config
and thumbnail location. A block without a view is reported, not rejected;
a block whose config file cannot be parsed is an error.`,
		Example: `  pagekit block inspect hero --theme ./themes/demo
  pagekit block inspect hero --format json`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			formatter, err := ctx.Formatter(cmd, &opts)
			if err != nil {
				return err
			}

			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			runCtx, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			report, err := ctx.Container.BlockCatalog().Inspect(runCtx, th, args[0])
			if err != nil {
				return err
			}

			return formatter.FormatBlock(report)
		}),
	}

	opts.RegisterFlags(cmd)

	return cmd
}

func newBlockGetCmd() *cobra.Command {
	var def string

	cmd := &cobra.Command{
		Use:   "get <slug> <key>",
		Short: "Read a value from a block's config",
		Long: `Look up a dot-separated key in the block's config. Numeric segments index
into lists. Scalars print as plain text, lists and maps print as YAML.`,
		Example: `  pagekit block get hero title
  pagekit block get hero settings.columns --default 3
  pagekit block get gallery images.0.src`,
		Args: cobra.ExactArgs(2),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			block, err := ctx.Container.BlockFactory().New(th, th, args[0])
			if err != nil {
				return err
			}

			value, ok := block.Get(args[1])
			if !ok {
				if cmd.Flags().Changed("default") {
					fmt.Fprintln(cmd.OutOrStdout(), def)
					return nil
				}
				return fmt.Errorf("key %q is not set for block %s", args[1], block.Slug())
			}

			return printValue(cmd, value)
		}),
	}

	cmd.Flags().StringVar(&def, "default", "", "Value printed when the key is not set")

	return cmd
}

func printValue(cmd *cobra.Command, value blockconfig.Value) error {
	if value.Kind() == blockconfig.KindScalar {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), value.String())
		return err
	}
	return output.NewYAMLFormatter(cmd.OutOrStdout()).FormatValue(value.Native())
}

func newBlockThumbCmd() *cobra.Command {
	var urlOnly bool

	cmd := &cobra.Command{
		Use:   "thumb <slug>",
		Short: "Print a block's thumbnail path and URL",
		Long: `Derive the content-addressed thumbnail location of a block. The location
changes whenever the block's view file changes.`,
		Example: `  pagekit block thumb hero
  pagekit block thumb hero --url`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			block, err := ctx.Container.BlockFactory().New(th, th, args[0])
			if err != nil {
				return err
			}

			url, err := block.ThumbURL()
			if err != nil {
				return err
			}

			if urlOnly {
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			}

			path, err := block.ThumbPath()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&urlOnly, "url", false, "Print only the public URL")

	return cmd
}

func newBlockValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <slug>",
		Short: "Check a block's config against its schema",
		Long: `Validate the block's config against the JSON Schema stored next to it
(config.schema.json by default). Blocks without a schema always pass.`,
		Example: `  pagekit block validate hero`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			block, err := ctx.Container.BlockFactory().New(th, th, args[0])
			if err != nil {
				return err
			}

			checked, err := block.ValidateConfig(ctx.Container.SchemaValidator())
			if err != nil {
				var validationErr *apperrors.ValidationError
				if errors.As(err, &validationErr) {
					for _, d := range validationErr.Details {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", d)
					}
				}
				return err
			}

			if !checked {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s has no config schema\n", block.Slug())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s config matches schema\n", block.Slug())
			return nil
		}),
	}

	return cmd
}

func newBlockWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <slug>",
		Short: "Print the thumbnail key every time the view changes",
		Long: `Follow edits to a block's view file and print the new thumbnail key and
URL each time it changes. Runs until interrupted.`,
		Example: `  pagekit block watch hero`,
		Args:    cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			block, err := ctx.Container.BlockFactory().New(th, th, args[0])
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			layout := ctx.Container.BlockFactory().Deps().Layout
			ctx.Logger.Info("watching block", "slug", block.Slug(), "folder", block.Folder())

			err = block.WatchThumbKey(runCtx, ctx.Container.FileWatcher(), func(key values.ThumbKey) {
				url := th.ResolvePublicAssetURL(key.RelativePath(layout.ThumbsPublicDir, layout.ThumbExt))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", time.Now().Format(time.RFC3339), key, url)
			})
			if err != nil && runCtx.Err() != nil {
				return nil
			}
			return err
		}),
	}

	return cmd
}
