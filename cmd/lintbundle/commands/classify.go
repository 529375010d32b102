package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/JNZader/lintbundle/internal/patterns"
	"github.com/JNZader/lintbundle/internal/report"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Show the override categories of paths",
	Long: `Classify each path as test, generated and/or known-config file.

A path may fall into several categories or none.

Examples:
  lintbundle classify utils.spec.js src/generated/codegen.config.ts`,

	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	classifier, err := patterns.Default()
	if err != nil {
		return err
	}

	items := make([]report.Classification, 0, len(args))
	for _, path := range args {
		cats := classifier.Classify(path)
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = string(c)
		}
		items = append(items, report.Classification{Path: path, Categories: names})
	}

	reporter, err := newReporter(appConfig)
	if err != nil {
		return err
	}

	return writeOutput(cmd, appConfig.Output.File, func(w io.Writer) error {
		return reporter.WriteClassification(w, items)
	})
}
