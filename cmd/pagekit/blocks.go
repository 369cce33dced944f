package main

import (
	"fmt"

	"github.com/pagekit-dev/pagekit/internal/application/dto"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newBlocksCmd())
}

func newBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Work with every block of a theme",
	}

	cmd.AddCommand(newBlocksListCmd())

	return cmd
}

func newBlocksListCmd() *cobra.Command {
	opts := DefaultCommonOptions()
	var (
		kinds         []string
		filterExpr    string
		maxConcurrent int
		failOnError   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the blocks of a theme",
		Long: `Resolve every folder under <theme>/blocks and report each block's kind and
files. Blocks whose config cannot be loaded are listed with their error.

Filtering:
  --kind dynamic                        Only blocks with a view.php
  --filter "has_controller"             Advanced filtering expression
  --filter "config.title != nil"        Expressions see slug, kind, error,
                                        has_controller, has_model, has_view
                                        and the block's config`,
		Example: `  pagekit blocks list --theme ./themes/demo
  pagekit blocks list --kind static --format json`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			formatter, err := ctx.Formatter(cmd, &opts)
			if err != nil {
				return err
			}

			th, err := ctx.OpenTheme()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("max-concurrent") {
				maxConcurrent = ctx.Container.SystemConfig().Catalog.MaxConcurrent
			}

			runCtx, cancel := opts.ApplyToContext(ctx.Context)
			defer cancel()

			catalog, err := ctx.Container.BlockCatalog().List(runCtx, th, dto.ListBlocksRequest{
				ThemeRoot: th.RootFolder(),
				Filters: dto.FilterOptions{
					Kinds:            kinds,
					FilterExpression: filterExpr,
				},
				MaxConcurrent: maxConcurrent,
			})
			if err != nil {
				return err
			}

			ctx.Logger.Debug("listed blocks",
				"request_id", catalog.Metadata.RequestID,
				"total", catalog.Summary.Total,
				"duration", catalog.Metadata.Duration)

			if err := formatter.FormatCatalog(catalog); err != nil {
				return err
			}

			if failOnError && catalog.Summary.Errors > 0 {
				return fmt.Errorf("%d block(s) failed to resolve", catalog.Summary.Errors)
			}
			return nil
		}),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Only list blocks of these kinds (static, dynamic)")
	cmd.Flags().StringVar(&filterExpr, "filter", "", "Filter expression (e.g. \"has_controller && kind == 'dynamic'\")")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "Blocks resolved in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit non-zero when any block fails to resolve")

	return cmd
}
