// Package singlelocation provides the automagic that propagates the seeded
// image location into every plugin requirement asking for one. It runs
// before any resolver that depends on the location being known.
package singlelocation

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/memscope/internal/automagic"
	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/ctxlog"
	"github.com/vk/memscope/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// RequirementName is the requirement plugins declare to receive the image
// location URI.
const RequirementName = "single_location"

// Automagic resolves single_location requirements from the run's seed entry.
type Automagic struct{}

// Name implements automagic.Automagic.
func (a *Automagic) Name() string { return "single_location" }

// Priority implements automagic.Automagic. This resolver produces the value
// every other resolver depends on, so it runs first.
func (a *Automagic) Priority() int { return 0 }

// Applicable reports whether the requirement tree asks for an image location
// anywhere.
func (a *Automagic) Applicable(req *config.Requirement) bool {
	applicable := false
	req.Walk("", func(r *config.Requirement, _ string) {
		if r.Name == RequirementName {
			applicable = true
		}
	})
	return applicable
}

// Resolve copies the seeded location into each single_location requirement
// path, after checking that the seed is present, well-formed and points at
// an existing file. Failures are reported per requirement path so the
// construction stage can name exactly what stayed unmet.
func (a *Automagic) Resolve(ctx context.Context, cfg *config.Context, req *config.Requirement, basePath string) []error {
	logger := ctxlog.FromContext(ctx)

	var targets []string
	req.Walk(basePath, func(r *config.Requirement, path string) {
		if r.Name == RequirementName {
			targets = append(targets, path)
		}
	})

	seed, ok := cfg.Get(automagic.SingleLocationKey)
	if !ok {
		return fail(targets, fmt.Errorf("no image location was seeded under %s", automagic.SingleLocationKey))
	}
	if seed.Type() != cty.String || seed.IsNull() {
		return fail(targets, fmt.Errorf("seeded image location is not a string"))
	}

	location := seed.AsString()
	localPath, err := automagic.LocationPath(location)
	if err != nil {
		return fail(targets, err)
	}
	if _, err := os.Stat(localPath); err != nil {
		return fail(targets, fmt.Errorf("image file is not accessible: %w", err))
	}

	for _, path := range targets {
		cfg.Set(path, cty.StringVal(location))
		logger.Debug("Resolved image location requirement.", "path", path)
	}
	return nil
}

func fail(targets []string, cause error) []error {
	errs := make([]error, 0, len(targets))
	for _, path := range targets {
		errs = append(errs, &automagic.ResolutionError{Path: path, Err: cause})
	}
	return errs
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the resolver with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAutomagic(&Automagic{})
}
