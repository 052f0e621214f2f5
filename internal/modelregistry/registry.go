// Package modelregistry maps public model names to provider model identifiers.
//
// The mapping is loaded once at startup and is read-only afterwards; the key
// set is the complete list of model names clients may request.
package modelregistry

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnsupportedModel indicates a public model name absent from the registry.
var ErrUnsupportedModel = errors.New("unsupported model")

// defaultTable is the built-in public-name to provider-id mapping.
var defaultTable = map[string]string{
	"craftifai-gpt-5.2":  "gpt-4o",
	"craftifai-gpt-lite": "gpt-4o-mini",
	"craftifai-fast":     "gpt-3.5-turbo",
}

// Registry is an immutable lookup table from public model names to provider ids.
type Registry struct {
	byName map[string]string
	names  []string
}

// New constructs a Registry from the given table. The table is copied; later
// mutation of the argument does not affect the registry.
func New(table map[string]string) *Registry {
	byName := make(map[string]string, len(table))
	names := make([]string, 0, len(table))
	for name, providerID := range table {
		name = strings.TrimSpace(name)
		providerID = strings.TrimSpace(providerID)
		if name == "" || providerID == "" {
			continue
		}
		byName[name] = providerID
		names = append(names, name)
	}
	sort.Strings(names)
	return &Registry{byName: byName, names: names}
}

// Default constructs a Registry with the built-in model table.
func Default() *Registry {
	return New(defaultTable)
}

// Resolve maps a public model name to its provider id.
func (r *Registry) Resolve(publicName string) (string, error) {
	providerID, ok := r.byName[strings.TrimSpace(publicName)]
	if !ok {
		return "", ErrUnsupportedModel
	}
	return providerID, nil
}

// Names returns the sorted list of public model names.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
