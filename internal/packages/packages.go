// Package packages answers whether a named package is installed for a
// project, using Node-style node_modules resolution.
package packages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Lookup reports whether a package is installed. An error means the answer
// is unknown.
type Lookup func(name string) (bool, error)

// Resolver resolves packages from a project root upward through every
// ancestor's node_modules directory.
type Resolver struct {
	fs   afero.Fs
	root string
}

// NewResolver creates a resolver rooted at root on fs.
func NewResolver(fs afero.Fs, root string) *Resolver {
	return &Resolver{fs: fs, root: filepath.Clean(root)}
}

// NewOSResolver creates a resolver on the host filesystem. A relative root
// is made absolute so resolution can walk past it.
func NewOSResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	return NewResolver(afero.NewOsFs(), abs), nil
}

// Exists reports whether node_modules/<name>/package.json is present in the
// root or any of its ancestors.
func (r *Resolver) Exists(name string) (bool, error) {
	if !validName(name) {
		return false, fmt.Errorf("invalid package name %q", name)
	}

	dir := r.root
	for {
		manifest := filepath.Join(dir, "node_modules", filepath.FromSlash(name), "package.json")
		info, err := r.fs.Stat(manifest)
		switch {
		case err == nil:
			if !info.IsDir() {
				return true, nil
			}
		case !os.IsNotExist(err):
			return false, fmt.Errorf("checking %s: %w", manifest, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return false, nil
		}
		dir = parent
	}
}

// Lookup returns r.Exists as a Lookup.
func (r *Resolver) Lookup() Lookup {
	return r.Exists
}

// validName accepts "name" and "@scope/name".
func validName(name string) bool {
	if name == "" || strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return false
	}
	parts := strings.Split(name, "/")
	switch len(parts) {
	case 1:
		return !strings.HasPrefix(name, "@")
	case 2:
		return strings.HasPrefix(parts[0], "@") && len(parts[0]) > 1 && parts[1] != ""
	default:
		return false
	}
}

// Static returns a Lookup answering from a fixed set of installed names.
func Static(installed ...string) Lookup {
	set := make(map[string]bool, len(installed))
	for _, n := range installed {
		set[n] = true
	}
	return func(name string) (bool, error) {
		return set[name], nil
	}
}
