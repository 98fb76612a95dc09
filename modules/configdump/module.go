// Package configdump provides the configdump plugin: it renders the entire
// resolved configuration store as a tree, one branch per dotted path
// segment. Useful for diagnosing what resolution actually produced.
package configdump

import (
	"context"
	"strings"

	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/plugin"
	"github.com/vk/memscope/internal/registry"
	"github.com/vk/memscope/internal/treegrid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Definition declares the configdump plugin. It requires nothing: whatever
// the store holds after resolution is what gets dumped.
func Definition() *plugin.Definition {
	return &plugin.Definition{
		Name:        "configdump",
		Description: "Renders the resolved configuration store as a path tree.",
		New: func(cfg *config.Context, configPath string) (plugin.Plugin, error) {
			return &Plugin{cfg: cfg}, nil
		},
	}
}

// Plugin is a constructed configdump instance.
type Plugin struct {
	cfg *config.Context
}

// Run walks the store's paths in lexicographic order and folds them into a
// segment tree. Intermediate segments that hold no value of their own get an
// empty value cell. Ordering is inherited from Context.Paths, so repeated
// runs over the same store produce the identical grid.
func (p *Plugin) Run(ctx context.Context) (*treegrid.TreeGrid, error) {
	grid, err := treegrid.New(
		treegrid.Column{Name: "Path", Type: cty.String},
		treegrid.Column{Name: "Value", Type: cty.String},
	)
	if err != nil {
		return nil, err
	}

	// nodes maps a full segment prefix to its row so deeper paths can find
	// their parent.
	nodes := make(map[string]*treegrid.Node)
	for _, path := range p.cfg.Paths() {
		segments := strings.Split(path, config.Separator)
		prefix := ""
		var parent *treegrid.Node
		for i, segment := range segments {
			if prefix == "" {
				prefix = segment
			} else {
				prefix = prefix + config.Separator + segment
			}
			node, ok := nodes[prefix]
			if !ok {
				value := cty.StringVal("")
				if i == len(segments)-1 {
					value = renderValue(p.cfg, path)
				}
				node, err = grid.Append(parent, cty.StringVal(segment), value)
				if err != nil {
					return nil, err
				}
				nodes[prefix] = node
			}
			parent = node
		}
	}
	return grid, nil
}

// renderValue formats a stored value for display, falling back to the cty
// debug form for non-stringifiable types.
func renderValue(cfg *config.Context, path string) cty.Value {
	val, ok := cfg.Get(path)
	if !ok {
		return cty.StringVal("")
	}
	if out, err := convert.Convert(val, cty.String); err == nil && !out.IsNull() {
		return out
	}
	return cty.StringVal(val.GoString())
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the plugin with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPlugin(Definition())
}
