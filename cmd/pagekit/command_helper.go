package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pagekit-dev/pagekit/internal/application/ports"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/container"
	"github.com/pagekit-dev/pagekit/internal/infrastructure/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
// Eliminates repetitive container initialization across CLI commands.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
// Commands focus on business logic, not infrastructure setup.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// Handles common setup: config loading, logger creation, dependency injection.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		c, err := container.New(container.Options{
			SystemConfigPath: cfgFile,
			BuiltinDir:       viper.GetString("builtin-dir"),
			AssetBaseURL:     viper.GetString("asset-base-url"),
			ShowSecrets:      viper.GetBool("show-secrets"),
			Logger:           logger,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}

// OpenTheme opens the theme selected by --theme or PAGEKIT_THEME.
func (c *CommandContext) OpenTheme() (*theme.DirTheme, error) {
	return c.Container.OpenTheme(viper.GetString("theme"))
}

// Formatter creates the output formatter selected by opts, writing to the command's stdout.
func (c *CommandContext) Formatter(cmd *cobra.Command, opts *CommonOptions) (ports.OutputFormatter, error) {
	if err := opts.ValidateFlags(); err != nil {
		return nil, err
	}
	return c.Container.FormatterFactory().Create(opts.Format, cmd.OutOrStdout(), opts.FormatterOptions())
}
