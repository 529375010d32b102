package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/JNZader/lintbundle/internal/bundle"
	"github.com/JNZader/lintbundle/internal/config"
	"github.com/JNZader/lintbundle/internal/logger"
	"github.com/JNZader/lintbundle/internal/packages"
	"github.com/JNZader/lintbundle/internal/report"
	"github.com/JNZader/lintbundle/internal/rules"
)

// loadCatalog returns the embedded rule sets, shadowed by the project's
// rules directory when one is configured.
func loadCatalog(cfg *config.Config) (*rules.Catalog, error) {
	if cfg.Project.RulesDir == "" {
		return rules.Default()
	}

	c, err := rules.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if err := c.LoadDir(afero.NewOsFs(), cfg.Project.RulesDir); err != nil {
		return nil, fmt.Errorf("loading rules dir: %w", err)
	}
	return c, nil
}

// packageLookup returns the capability check for the configured prettier
// mode. "auto" resolves packages from the project root.
func packageLookup(cfg *config.Config) (packages.Lookup, error) {
	switch cfg.Prettier {
	case "on":
		return func(string) (bool, error) { return true, nil }, nil
	case "off":
		return packages.Static(), nil
	}

	r, err := packages.NewOSResolver(cfg.Project.Root)
	if err != nil {
		return nil, err
	}
	return r.Lookup(), nil
}

func assemblerOptions(cfg *config.Config) ([]bundle.Option, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	lookup, err := packageLookup(cfg)
	if err != nil {
		return nil, err
	}

	return []bundle.Option{
		bundle.WithCatalog(catalog),
		bundle.WithPackageLookup(lookup),
		bundle.WithCacheSize(cfg.Cache.MaxEntries),
		bundle.WithLogger(logger.Default()),
	}, nil
}

// newAssembler creates the assembler for the configured bundle.
func newAssembler(cfg *config.Config) (*bundle.Assembler, error) {
	def, err := bundle.Lookup(cfg.Bundle)
	if err != nil {
		return nil, err
	}

	opts, err := assemblerOptions(cfg)
	if err != nil {
		return nil, err
	}
	return bundle.NewAssembler(def, opts...)
}

func newReporter(cfg *config.Config) (report.Reporter, error) {
	return report.NewReporter(cfg.Output.Format)
}
