// Package imagestat provides the automagic that fills file-metadata
// requirements (size, modification time) by statting the located image. It
// never opens or reads the image contents.
package imagestat

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/memscope/internal/automagic"
	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/ctxlog"
	"github.com/vk/memscope/internal/registry"
	"github.com/vk/memscope/modules/singlelocation"
	"github.com/zclconf/go-cty/cty"
)

// Requirement names this resolver knows how to satisfy.
const (
	SizeRequirement     = "stat_size"
	ModifiedRequirement = "stat_modified"
)

// Automagic resolves stat_size and stat_modified requirements.
type Automagic struct{}

// Name implements automagic.Automagic.
func (a *Automagic) Name() string { return "image_stat" }

// Priority implements automagic.Automagic. Runs after the location resolver,
// whose output it consumes.
func (a *Automagic) Priority() int { return 10 }

// Applicable reports whether the tree declares any stat requirement.
func (a *Automagic) Applicable(req *config.Requirement) bool {
	applicable := false
	req.Walk("", func(r *config.Requirement, _ string) {
		if r.Name == SizeRequirement || r.Name == ModifiedRequirement {
			applicable = true
		}
	})
	return applicable
}

// Resolve stats the file behind the already-resolved single_location value
// and writes size and modification time into the matching requirement
// paths. If the location has not been resolved yet, every stat requirement
// is reported unmet rather than aborting the run.
func (a *Automagic) Resolve(ctx context.Context, cfg *config.Context, req *config.Requirement, basePath string) []error {
	logger := ctxlog.FromContext(ctx)

	var locationPath string
	var targets []string
	req.Walk(basePath, func(r *config.Requirement, path string) {
		switch r.Name {
		case singlelocation.RequirementName:
			locationPath = path
		case SizeRequirement, ModifiedRequirement:
			targets = append(targets, path)
		}
	})

	if locationPath == "" {
		return fail(targets, fmt.Errorf("plugin declares no %s requirement to stat", singlelocation.RequirementName))
	}
	loc, ok := cfg.Get(locationPath)
	if !ok {
		return fail(targets, fmt.Errorf("image location at %s has not been resolved", locationPath))
	}

	localPath, err := automagic.LocationPath(loc.AsString())
	if err != nil {
		return fail(targets, err)
	}
	info, err := os.Stat(localPath)
	if err != nil {
		return fail(targets, fmt.Errorf("cannot stat image file: %w", err))
	}

	req.Walk(basePath, func(r *config.Requirement, path string) {
		switch r.Name {
		case SizeRequirement:
			cfg.Set(path, cty.NumberIntVal(info.Size()))
		case ModifiedRequirement:
			cfg.Set(path, cty.StringVal(info.ModTime().UTC().Format(time.RFC3339)))
		}
	})
	logger.Debug("Resolved image stat requirements.", "paths", targets, "size", info.Size())
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
