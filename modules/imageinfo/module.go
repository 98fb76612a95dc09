// Package imageinfo provides the imageinfo plugin: it reports basic facts
// about the located memory image as a small attribute tree, without parsing
// the image contents.
package imageinfo

import (
	"context"
	"fmt"

	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/plugin"
	"github.com/vk/memscope/internal/registry"
	"github.com/vk/memscope/internal/treegrid"
	"github.com/vk/memscope/modules/imagestat"
	"github.com/vk/memscope/modules/singlelocation"
	"github.com/zclconf/go-cty/cty"
)

// Definition declares the imageinfo plugin.
func Definition() *plugin.Definition {
	return &plugin.Definition{
		Name:        "imageinfo",
		Description: "Reports basic facts about the memory image without reading its contents.",
		Requirements: []*config.Requirement{
			{
				Name:        singlelocation.RequirementName,
				Type:        cty.String,
				Description: "URI of the memory image to analyse.",
			},
			{
				Name:        imagestat.SizeRequirement,
				Type:        cty.Number,
				Description: "Size of the image file in bytes.",
				Optional:    true,
			},
			{
				Name:        imagestat.ModifiedRequirement,
				Type:        cty.String,
				Description: "Last modification time of the image file.",
				Optional:    true,
			},
		},
		New: func(cfg *config.Context, configPath string) (plugin.Plugin, error) {
			return &Plugin{cfg: cfg, configPath: configPath}, nil
		},
	}
}

// Plugin is a constructed imageinfo instance.
type Plugin struct {
	cfg        *config.Context
	configPath string
}

// Run builds a two-level grid: one row for the image itself, child rows for
// each resolved attribute.
func (p *Plugin) Run(ctx context.Context) (*treegrid.TreeGrid, error) {
	grid, err := treegrid.New(
		treegrid.Column{Name: "Attribute", Type: cty.String},
		treegrid.Column{Name: "Value", Type: cty.String},
	)
	if err != nil {
		return nil, err
	}

	location, ok := p.cfg.Get(config.Join(p.configPath, singlelocation.RequirementName))
	if !ok {
		// Construction validated this path; its absence means the store was
		// mutated after construction.
		return nil, fmt.Errorf("image location disappeared from configuration")
	}

	root, err := grid.Append(nil, cty.StringVal("image"), location)
	if err != nil {
		return nil, err
	}
	if size, ok := p.cfg.Get(config.Join(p.configPath, imagestat.SizeRequirement)); ok {
		if _, err := grid.Append(root, cty.StringVal("size_bytes"), size); err != nil {
			return nil, err
		}
	}
	if modified, ok := p.cfg.Get(config.Join(p.configPath, imagestat.ModifiedRequirement)); ok {
		if _, err := grid.Append(root, cty.StringVal("modified"), modified); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the plugin with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterPlugin(Definition())
}
