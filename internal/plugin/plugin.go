// Package plugin defines analysis plugins and the two stages that turn a
// definition into results: construction (requirement validation against the
// configuration store) and execution (a single invocation of the plugin's
// analysis logic).
package plugin

import (
	"context"

	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/treegrid"
)

// ProgressFn reports progress of long-running construction steps, such as
// opening large image files. Callers that pass nil get silent construction.
type ProgressFn func(progress float64, message string)

// Plugin is a constructed analysis module, bound to a validated slice of the
// configuration store. Instances are built once per run and discarded after
// execution.
type Plugin interface {
	// Run performs the analysis exactly once and returns the fully
	// materialized result grid.
	Run(ctx context.Context) (*treegrid.TreeGrid, error)
}

// Factory builds the plugin instance once its configuration has been
// validated. configPath is the branch of the store the instance owns.
type Factory func(cfg *config.Context, configPath string) (Plugin, error)

// Definition declares a plugin: its identity, the configuration it requires,
// and how to build a runnable instance.
type Definition struct {
	Name         string
	Description  string
	Requirements []*config.Requirement
	New          Factory
}

// Root returns the definition's requirement tree rooted at its own name, the
// shape the selector, resolvers and constructor all operate on.
func (d *Definition) Root() *config.Requirement {
	return &config.Requirement{Name: d.Name, Children: d.Requirements}
}
