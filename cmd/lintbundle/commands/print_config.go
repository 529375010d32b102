package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var printConfigCmd = &cobra.Command{
	Use:   "print-config [file]",
	Short: "Print the assembled configuration",
	Long: `Print the configuration object of the selected bundle.

Without a file, the overrides are included as file-pattern blocks. With a
file, the overrides matching it are applied and the result is the effective
rule table for that file.

Examples:
  # Configuration without file context
  lintbundle print-config

  # Effective configuration for a known config file, as YAML
  lintbundle print-config jest.config.ts --format yaml`,

	Args: cobra.MaximumNArgs(1),
	RunE: runPrintConfig,
}

func init() {
	rootCmd.AddCommand(printConfigCmd)
}

func runPrintConfig(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	asm, err := newAssembler(appConfig)
	if err != nil {
		return err
	}

	cfg, err := asm.Build(path)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", appConfig.Bundle, err)
	}

	reporter, err := newReporter(appConfig)
	if err != nil {
		return err
	}

	return writeOutput(cmd, appConfig.Output.File, func(w io.Writer) error {
		return reporter.WriteConfig(w, cfg)
	})
}
