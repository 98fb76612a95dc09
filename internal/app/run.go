package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/memscope/internal/automagic"
	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/ctxlog"
	"github.com/vk/memscope/internal/hcl"
	"github.com/vk/memscope/internal/plugin"
	"github.com/vk/memscope/internal/treegrid"
	"github.com/zclconf/go-cty/cty"
)

// BasePath is the configuration branch plugins are constructed under.
const BasePath = "plugins"

// Record is one flattened result row: the row's values in column order plus
// its depth in the original tree.
type Record struct {
	Depth  int
	Values []cty.Value
}

// Run drives one full analysis: seed the store with the image location,
// choose and run the applicable automagics, construct the target plugin,
// execute it, and print the flattened records. Resolution errors are
// reported as warnings and do not stop the pipeline; construction and
// execution failures abort it with distinct errors.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	location, pluginName, overrides, err := a.resolveInput(ctx, appConfig)
	if err != nil {
		return err
	}

	def, ok := a.registry.Plugin(pluginName)
	if !ok {
		return fmt.Errorf("unknown plugin %q (available: %v)", pluginName, a.registry.PluginNames())
	}

	// Seed the store. This single entry is the only external input the
	// resolvers get.
	cfg := config.NewContext()
	cfg.Set(automagic.SingleLocationKey, cty.StringVal(location))
	overrideKeys := make([]string, 0, len(overrides))
	for key := range overrides {
		overrideKeys = append(overrideKeys, key)
	}
	sort.Strings(overrideKeys)
	for _, key := range overrideKeys {
		cfg.Set(config.Join(BasePath, def.Name, key), overrides[key])
	}
	a.logger.Debug("Configuration store seeded.", "location", location, "overrides", len(overrides))

	root := def.Root()
	selected := automagic.Choose(a.registry.Automagics(), root)
	a.logger.Debug("Automagics selected.", "count", len(selected))

	resolutionErrs := automagic.Run(ctx, selected, cfg, root, BasePath)
	for _, re := range resolutionErrs {
		a.logger.Warn("Automagic could not satisfy a requirement.",
			"automagic", re.Automagic, "path", re.Path, "error", re.Err)
	}
	// Resolution errors are deliberately non-fatal: construction's
	// validation is the real gate for anything that stayed unmet.

	instance, err := plugin.Construct(ctx, cfg, def, BasePath, nil)
	if err != nil {
		return fmt.Errorf("failed to construct plugin: %w", err)
	}
	a.logger.Info("Plugin constructed.", "plugin", def.Name)

	grid, err := plugin.Execute(ctx, def, instance)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	records := Collect(grid)
	a.printRecords(grid.Columns(), records)
	a.logger.Info("Analysis complete.",
		"plugin", def.Name, "records", len(records), "resolution_warnings", len(resolutionErrs))
	return nil
}

// resolveInput merges the run profile (if any) with command-line values;
// explicit flags win over the profile.
func (a *App) resolveInput(ctx context.Context, appConfig *Config) (location, pluginName string, overrides map[string]cty.Value, err error) {
	location = appConfig.Location
	pluginName = appConfig.Plugin
	overrides = map[string]cty.Value{}

	if appConfig.ProfilePath != "" {
		profile, err := hcl.LoadProfile(ctx, appConfig.ProfilePath)
		if err != nil {
			return "", "", nil, err
		}
		if location == "" {
			location = profile.Location
		}
		if pluginName == "" {
			pluginName = profile.Plugin
		}
		overrides = profile.Overrides
	}

	if location == "" {
		return "", "", nil, fmt.Errorf("no image location given: pass --file or set location in the run profile")
	}
	if pluginName == "" {
		return "", "", nil, fmt.Errorf("no plugin given: pass --plugin or set plugin in the run profile")
	}
	return location, pluginName, overrides, nil
}

// Collect flattens the result grid into records via a pre-order fold.
func Collect(grid *treegrid.TreeGrid) []Record {
	acc := grid.Populate(func(n *treegrid.Node, acc any) any {
		return append(acc.([]Record), Record{Depth: n.Depth(), Values: n.Values()})
	}, []Record{})
	return acc.([]Record)
}
