// Package commands contains all CLI commands for lintbundle.
//
// This package uses the Cobra library for CLI management.
// Each command is defined in its own file and registered in init().
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JNZader/lintbundle/internal/config"
	"github.com/JNZader/lintbundle/internal/logger"
)

var (
	// cfgFile holds the path to the config file (from --config flag)
	cfgFile string

	// verbose enables debug logging
	verbose bool

	// quiet suppresses all output except errors
	quiet bool

	// appConfig is the configuration loaded before every command runs
	appConfig *config.Config

	// configFileUsed is the config file appConfig was read from, if any
	configFileUsed string
)

// flagKeys maps persistent flags to the configuration keys they override.
var flagKeys = map[string]string{
	"bundle":   "bundle",
	"format":   "output.format",
	"output":   "output.file",
	"prettier": "prettier",
	"project":  "project.root",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lintbundle",
	Short: "Shareable lint configuration bundles",
	Long: `lintbundle assembles lint configurations from upstream rule sets,
customizations and file-pattern overrides, and prints the effective
configuration for any file.

Examples:
  # Print the configuration without file context
  lintbundle print-config

  # Print the configuration applied to a test file
  lintbundle print-config src/utils.spec.ts

  # Show which override categories a path falls into
  lintbundle classify jest.config.ts src/generated/types.ts

  # List the rules that report errors
  lintbundle rules --min-severity error --format table`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is .lintbundle.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	flags.StringP("bundle", "b", "javascript", "bundle to assemble (javascript, graphql)")
	flags.StringP("format", "f", "json", "output format (json, yaml, markdown, table)")
	flags.StringP("output", "o", "", "write output to file instead of stdout")
	flags.String("prettier", "auto", "prettier compatibility layer (auto, on, off)")
	flags.String("project", ".", "project root used to detect installed packages")
}

// initializeConfig loads the configuration, applies flag overrides and
// configures the default logger.
func initializeConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}

	for name, key := range flagKeys {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	switch {
	case quiet:
		level = logger.LevelError
	case verbose:
		level = logger.LevelDebug
	}
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)

	configFileUsed = loader.ConfigFileUsed()
	if configFileUsed != "" {
		logger.Debug("using config file %s", configFileUsed)
	}

	appConfig = cfg
	return nil
}

// isVerbose returns true if verbose mode is enabled
func isVerbose() bool {
	return verbose && !quiet
}

// isQuiet returns true if quiet mode is enabled
func isQuiet() bool {
	return quiet
}
