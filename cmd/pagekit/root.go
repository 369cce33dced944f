package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "pagekit",
	Short: "Inspect and scaffold theme blocks",
	Long: `Pagekit resolves the content blocks of a site theme. A block is a folder
under <theme>/blocks holding a view, optional controller and model overrides,
and an optional config file. Pagekit reports how each block resolves, reads
its configuration and derives content-addressed thumbnail locations.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pagekit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("theme", ".", "theme root directory")
	rootCmd.PersistentFlags().String("builtin-dir", "", "directory holding block/BaseController.php and block/BaseModel.php")
	rootCmd.PersistentFlags().String("asset-base-url", "", "base URL public theme assets are served from")
	rootCmd.PersistentFlags().Bool("show-secrets", false, "do not redact secrets in reported block config")

	for _, name := range []string{"theme", "builtin-dir", "asset-base-url", "show-secrets"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	viper.SetEnvPrefix("pagekit")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home + "/.pagekit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
