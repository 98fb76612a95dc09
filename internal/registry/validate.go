package registry

import (
	"fmt"
	"strings"

	"github.com/vk/memscope/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Validate performs a strict integrity check over every registered plugin
// definition: each must have a factory, and every requirement must either
// carry a type or act as a pure namespace for children. Defaults are checked
// for convertibility to their declared type so a bad default fails at
// startup rather than mid-run.
func (r *Registry) Validate() error {
	var errs []string

	for name, def := range r.PluginRegistry {
		if def.Name == "" {
			errs = append(errs, fmt.Sprintf("plugin registered under %q has an empty name", name))
		}
		if def.New == nil {
			errs = append(errs, fmt.Sprintf("plugin '%s': no factory function", name))
		}
		seen := make(map[string]struct{})
		for _, req := range def.Requirements {
			if _, dup := seen[req.Name]; dup {
				errs = append(errs, fmt.Sprintf("plugin '%s': duplicate requirement name '%s'", name, req.Name))
			}
			seen[req.Name] = struct{}{}
		}
		def.Root().Walk("", func(req *config.Requirement, path string) {
			if req.Name == "" {
				errs = append(errs, fmt.Sprintf("plugin '%s': requirement under '%s' has an empty name", name, path))
			}
			if req.Type == cty.NilType && len(req.Children) == 0 && path != def.Name {
				errs = append(errs, fmt.Sprintf("plugin '%s': requirement '%s' has neither a type nor children", name, path))
			}
			if req.Default != nil && req.Type != cty.NilType {
				if _, err := convert.Convert(*req.Default, req.Type); err != nil {
					errs = append(errs, fmt.Sprintf("plugin '%s': default for '%s' is not convertible to its declared type: %v", name, path, err))
				}
			}
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
