package rules

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var embeddedSets embed.FS

// Catalog holds the upstream rule sets that bundles extend, keyed by name.
type Catalog struct {
	mu   sync.RWMutex
	sets map[string]*RuleSet
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{sets: make(map[string]*RuleSet)}
}

var defaultCatalog = sync.OnceValues(LoadEmbedded)

// Default returns the catalog of embedded rule sets. It is loaded once.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// LoadEmbedded builds a catalog from the rule sets shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	c := NewCatalog()

	entries, err := embeddedSets.ReadDir("defaults")
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := embeddedSets.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return nil, err
		}

		set, err := parseRuleSetYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		c.Add(set)
	}

	return c, nil
}

// LoadDir adds every *.yaml / *.yml rule set found under dir. Sets loaded
// here shadow sets of the same name. A missing dir is not an error.
func (c *Catalog) LoadDir(fs afero.Fs, dir string) error {
	if _, err := fs.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}

		set, err := parseRuleSetYAML(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		c.Add(set)
		return nil
	})
}

func parseRuleSetYAML(data []byte) (*RuleSet, error) {
	var set RuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	if set.Name == "" {
		return nil, fmt.Errorf("rule set has no name")
	}
	if set.Rules == nil {
		set.Rules = make(Table)
	}
	return &set, nil
}

// Add registers set, replacing any set with the same name.
func (c *Catalog) Add(set *RuleSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[set.Name] = set
}

// Get returns the rule set called name.
func (c *Catalog) Get(name string) (*RuleSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set, ok := c.sets[name]
	if !ok {
		return nil, &UnknownRuleSetError{Name: name}
	}
	return set, nil
}

// Names returns the registered rule set names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layer builds the base table for an extends list: the rule sets are merged
// in order, later names overriding earlier ones.
func (c *Catalog) Layer(names ...string) (Table, error) {
	tables := make([]Table, 0, len(names))
	for _, name := range names {
		set, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, set.Rules)
	}
	return MergeTables(tables...), nil
}

// Meta returns what the catalog knows about rule id. Rules without explicit
// metadata still report their plugin; ok is false for them.
func (c *Catalog) Meta(id string) (meta Meta, ok bool) {
	for _, name := range c.Names() {
		set, err := c.Get(name)
		if err != nil {
			continue
		}
		if m, found := set.Meta[id]; found {
			meta, ok = m, true
			break
		}
	}
	if meta.Plugin == "" {
		meta.Plugin = PluginOf(id)
	}
	return meta, ok
}
