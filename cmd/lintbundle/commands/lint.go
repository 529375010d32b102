package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/JNZader/lintbundle/internal/harness"
	"github.com/JNZader/lintbundle/internal/logger"
	"github.com/JNZader/lintbundle/internal/metrics"
)

var lintCmd = &cobra.Command{
	Use:   "lint <pattern>...",
	Short: "Resolve the configuration of every matching file",
	Long: `Resolve the effective configuration of every file matching the glob
patterns and summarize the active rules per file.

Without --dir the bundle's sample fixtures are used, which checks that the
bundle assembles for the files it is meant for. With --dir the files of an
existing directory are resolved; nothing is written to it.

Examples:
  # Resolve the bundle's own fixtures
  lintbundle lint '*.js'

  # Resolve a project's TypeScript sources
  lintbundle lint '**/*.ts' --dir ./web --format table

  # Print resolution metrics to stderr
  lintbundle lint '**/*' --metrics prometheus`,

	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

var (
	lintDir     string
	lintWorkers int
	lintMetrics string
)

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVar(&lintDir, "dir", "", "directory to resolve instead of the bundle fixtures")
	lintCmd.Flags().IntVar(&lintWorkers, "workers", 0, "number of concurrent resolutions (default: GOMAXPROCS)")
	lintCmd.Flags().StringVar(&lintMetrics, "metrics", "", "print resolution metrics to stderr (json, prometheus)")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	switch lintMetrics {
	case "", "json", "prometheus":
	default:
		return fmt.Errorf("unknown metrics format %q (use json or prometheus)", lintMetrics)
	}
	collector := metrics.NewCollector()

	asmOpts, err := assemblerOptions(appConfig)
	if err != nil {
		return err
	}

	opts := []harness.Option{
		harness.WithAssemblerOptions(asmOpts...),
		harness.WithWorkers(lintWorkers),
		harness.WithLogger(logger.Default()),
		harness.WithMetrics(collector),
	}
	if lintDir != "" {
		dir, err := filepath.Abs(lintDir)
		if err != nil {
			return fmt.Errorf("resolving --dir: %w", err)
		}
		opts = append(opts,
			harness.WithFS(afero.NewReadOnlyFs(afero.NewOsFs())),
			harness.WithDir(dir),
			harness.WithFixtures(nil))
	}

	h, err := harness.New(appConfig.Bundle, opts...)
	if err != nil {
		return err
	}

	if lintDir == "" {
		if err := h.Setup(ctx); err != nil {
			return err
		}
		defer func() {
			if err := h.Teardown(ctx); err != nil {
				logger.Warn("teardown failed: %v", err)
			}
		}()
	}

	res, err := h.Lint(ctx, args)
	if err != nil {
		return err
	}

	if isVerbose() {
		stats := h.Assembler().CacheStats()
		logger.Debug("resolution cache: %s hit_rate=%.2f", stats, stats.HitRate())
	}

	reporter, err := newReporter(appConfig)
	if err != nil {
		return err
	}

	err = writeOutput(cmd, appConfig.Output.File, func(w io.Writer) error {
		return reporter.WriteLint(w, res)
	})
	if err != nil {
		return err
	}
	return writeMetrics(cmd.ErrOrStderr(), collector, lintMetrics)
}

func writeMetrics(w io.Writer, c *metrics.Collector, format string) error {
	switch format {
	case "json":
		data, err := c.Export()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "prometheus":
		_, err := io.WriteString(w, c.ExportPrometheus())
		return err
	}
	return nil
}
