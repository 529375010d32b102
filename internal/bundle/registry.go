package bundle

import (
	"sort"
)

var registry = map[string]func() *Definition{
	"javascript": JavaScript,
	"graphql":    GraphQL,
}

// UnknownBundleError is returned by Lookup for unregistered names.
type UnknownBundleError struct {
	Name string
}

func (e *UnknownBundleError) Error() string {
	return "unknown bundle: " + e.Name
}

// Lookup returns a fresh definition of the named bundle.
func Lookup(name string) (*Definition, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, &UnknownBundleError{Name: name}
	}
	return fn(), nil
}

// Names returns the registered bundle names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
