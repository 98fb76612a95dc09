package app

import (
	"io"
	"log/slog"

	"github.com/vk/memscope/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. When
// no modules are supplied, the compiled-in core set is registered.
func NewApp(outW, errW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules))

	// A definition that fails integrity checks is a programmer error
	// (mismatch inside compiled-in code), so we panic.
	if err := reg.Validate(); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "plugins", reg.PluginNames())

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
