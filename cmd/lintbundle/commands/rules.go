package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JNZader/lintbundle/internal/report"
	"github.com/JNZader/lintbundle/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules of the assembled configuration",
	Long: `List every rule of the assembled configuration with its severity,
options and catalog metadata.

Examples:
  # Rules reported as errors
  lintbundle rules --min-severity error --format table

  # Unicorn rules as applied to a test file
  lintbundle rules --prefix unicorn/ --file src/button.test.tsx`,

	Args: cobra.NoArgs,
	RunE: runRules,
}

var (
	rulesMinSeverity string
	rulesPrefix      string
	rulesFile        string
)

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesMinSeverity, "min-severity", "off", "lowest severity to list (off, warn, error)")
	rulesCmd.Flags().StringVar(&rulesPrefix, "prefix", "", "only list rules whose identifier starts with prefix")
	rulesCmd.Flags().StringVar(&rulesFile, "file", "", "resolve the rules for this file")
}

func runRules(cmd *cobra.Command, args []string) error {
	minSeverity, err := rules.ParseSeverity(rulesMinSeverity)
	if err != nil {
		return err
	}

	asm, err := newAssembler(appConfig)
	if err != nil {
		return err
	}

	cfg, err := asm.Build(rulesFile)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", appConfig.Bundle, err)
	}

	rows := report.RuleRows(cfg.Rules.AtLeast(minSeverity).WithPrefix(rulesPrefix), asm.Catalog())

	reporter, err := newReporter(appConfig)
	if err != nil {
		return err
	}

	return writeOutput(cmd, appConfig.Output.File, func(w io.Writer) error {
		return reporter.WriteRules(w, rows)
	})
}
