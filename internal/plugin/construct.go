package plugin

import (
	"context"
	"fmt"

	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/ctxlog"
)

// ConstructionError reports why a plugin could not be constructed: either
// the first requirement that was missing or mis-typed after resolution, or a
// failure inside the plugin's factory. Construction is all-or-nothing; there
// is no partially constructed plugin.
type ConstructionError struct {
	Plugin string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("plugin %q: required configuration %q is missing or has an incompatible type", e.Plugin, e.Path)
	}
	return fmt.Sprintf("plugin %q could not be constructed: %v", e.Plugin, e.Err)
}

// Unwrap exposes the underlying cause, if any.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Construct validates that every required path in the definition's
// requirement tree has a present, type-compatible value in the store, then
// builds the runnable instance. Defaults are applied first, so a defaulted
// requirement never fails validation. The first unmet requirement aborts
// construction; execution never starts for a plugin that failed here.
func Construct(ctx context.Context, cfg *config.Context, def *Definition, basePath string, progress ProgressFn) (Plugin, error) {
	logger := ctxlog.FromContext(ctx)
	if progress == nil {
		progress = func(float64, string) {}
	}

	root := def.Root()
	progress(0, "applying requirement defaults")
	root.ApplyDefaults(cfg, basePath)

	progress(0.5, "validating configuration")
	if unmet := root.Unsatisfied(cfg, basePath); len(unmet) > 0 {
		logger.Debug("Plugin construction rejected.", "plugin", def.Name, "unmet", unmet)
		return nil, &ConstructionError{Plugin: def.Name, Path: unmet[0]}
	}

	configPath := config.Join(basePath, def.Name)
	instance, err := def.New(cfg, configPath)
	if err != nil {
		return nil, &ConstructionError{Plugin: def.Name, Err: err}
	}
	progress(1, "construction complete")
	logger.Debug("Plugin constructed.", "plugin", def.Name, "config_path", configPath)
	return instance, nil
}
