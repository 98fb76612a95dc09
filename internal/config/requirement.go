package config

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Requirement declares a single configuration value a plugin or automagic
// needs, possibly with nested requirements for sub-components. A requirement
// whose Type is cty.NilType carries no value of its own and only namespaces
// its children.
type Requirement struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
	Children    []*Requirement
}

// Path returns the dotted store path of this requirement under the given base.
func (r *Requirement) Path(base string) string {
	return Join(base, r.Name)
}

// Walk visits the requirement and all nested requirements in declaration
// order, passing each one's store path.
func (r *Requirement) Walk(base string, visit func(req *Requirement, path string)) {
	path := r.Path(base)
	visit(r, path)
	for _, child := range r.Children {
		child.Walk(path, visit)
	}
}

// ApplyDefaults writes the declared default of every requirement that has one
// and is not already present in the store. It runs before validation so a
// defaulted requirement can never be reported as unmet.
func (r *Requirement) ApplyDefaults(cfg *Context, base string) {
	r.Walk(base, func(req *Requirement, path string) {
		if req.Default != nil && !cfg.Has(path) {
			cfg.Set(path, *req.Default)
		}
	})
}

// Unsatisfied returns the store paths of requirements that are missing or not
// convertible to their declared type, in declaration order. Optional
// requirements are skipped entirely; their children still carry their own
// optionality and are checked.
func (r *Requirement) Unsatisfied(cfg *Context, base string) []string {
	var unmet []string
	r.Walk(base, func(req *Requirement, path string) {
		if req.Type == cty.NilType || req.Optional {
			return
		}
		val, ok := cfg.Get(path)
		if !ok {
			unmet = append(unmet, path)
			return
		}
		if _, err := convert.Convert(val, req.Type); err != nil {
			unmet = append(unmet, path)
		}
	})
	return unmet
}
