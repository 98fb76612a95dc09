// Package registry holds the catalogs of compiled-in analysis plugins and
// automagic resolvers for a single application instance.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/memscope/internal/automagic"
	"github.com/vk/memscope/internal/plugin"
)

// Module is the interface packages implement to contribute plugins or
// automagics to an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered plugin definitions and automagic resolvers.
type Registry struct {
	PluginRegistry    map[string]*plugin.Definition
	AutomagicRegistry map[string]automagic.Automagic
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		PluginRegistry:    make(map[string]*plugin.Definition),
		AutomagicRegistry: make(map[string]automagic.Automagic),
	}
}

// RegisterPlugin registers a plugin definition under its name. Duplicate
// registration is a programmer error and panics.
func (r *Registry) RegisterPlugin(def *plugin.Definition) {
	if _, exists := r.PluginRegistry[def.Name]; exists {
		panic(fmt.Sprintf("plugin with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering plugin.", "name", def.Name)
	r.PluginRegistry[def.Name] = def
}

// RegisterAutomagic registers an automagic resolver under its name.
// Duplicate registration is a programmer error and panics.
func (r *Registry) RegisterAutomagic(a automagic.Automagic) {
	if _, exists := r.AutomagicRegistry[a.Name()]; exists {
		panic(fmt.Sprintf("automagic with name '%s' already registered", a.Name()))
	}
	slog.Debug("Registering automagic.", "name", a.Name(), "priority", a.Priority())
	r.AutomagicRegistry[a.Name()] = a
}

// Plugin looks up a plugin definition by name.
func (r *Registry) Plugin(name string) (*plugin.Definition, bool) {
	def, ok := r.PluginRegistry[name]
	return def, ok
}

// PluginNames returns the registered plugin names in lexicographic order.
func (r *Registry) PluginNames() []string {
	names := make([]string, 0, len(r.PluginRegistry))
	for name := range r.PluginRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Automagics returns the full resolver catalog, ordered by name so callers
// never observe map iteration order. Execution order is decided later by
// selection, not by this listing.
func (r *Registry) Automagics() []automagic.Automagic {
	names := make([]string, 0, len(r.AutomagicRegistry))
	for name := range r.AutomagicRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	catalog := make([]automagic.Automagic, 0, len(names))
	for _, name := range names {
		catalog = append(catalog, r.AutomagicRegistry[name])
	}
	return catalog
}
