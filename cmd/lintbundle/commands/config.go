package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View lintbundle configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current configuration, including values from
config file, environment variables, flags and defaults.

Examples:
  # Show config in YAML format
  lintbundle config show

  # Show config as JSON
  lintbundle config show --json`,

	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var (
	configShowJSON bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output as JSON")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !isQuiet() && !configShowJSON {
		if configFileUsed != "" {
			fmt.Fprintf(out, "# Config file: %s\n\n", configFileUsed)
		} else {
			fmt.Fprintln(out, "# No config file found, using defaults")
			fmt.Fprintln(out)
		}
	}

	if configShowJSON {
		data, err := json.MarshalIndent(appConfig, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
