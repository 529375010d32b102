package commands

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/rules"
)

// Version information, set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and bundle information",
	Long: `Print the lintbundle version together with the bundles it ships and
the upstream rule sets embedded in the binary.

Examples:
  lintbundle version
  lintbundle version --short
  lintbundle version --rule-sets
  lintbundle version --json`,

	Args: cobra.NoArgs,
	RunE: runVersion,
}

var (
	versionShort    bool
	versionJSON     bool
	versionRuleSets bool
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only version number")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
	versionCmd.Flags().BoolVar(&versionRuleSets, "rule-sets", false, "list the embedded rule sets")
}

// VersionInfo describes the binary and what it embeds.
type VersionInfo struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Bundles   []string `json:"bundles"`
	RuleSets  []string `json:"rule_sets"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	info, err := GetVersionInfo()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case versionShort:
		fmt.Fprintln(out, info.Version)
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case versionRuleSets:
		for _, name := range info.RuleSets {
			fmt.Fprintln(out, name)
		}
	default:
		fmt.Fprintf(out, "lintbundle %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
		fmt.Fprintf(out, "  Go:        %s %s\n", info.GoVersion, info.Platform)
		fmt.Fprintf(out, "  Bundles:   %s\n", strings.Join(info.Bundles, ", "))
		fmt.Fprintf(out, "  Rule sets: %d embedded\n", len(info.RuleSets))
	}
	return nil
}

// GetVersionInfo returns the build information and the embedded bundles and
// rule sets.
func GetVersionInfo() (VersionInfo, error) {
	catalog, err := rules.Default()
	if err != nil {
		return VersionInfo{}, fmt.Errorf("loading rule sets: %w", err)
	}

	return VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Bundles:   bundle.Names(),
		RuleSets:  catalog.Names(),
	}, nil
}
