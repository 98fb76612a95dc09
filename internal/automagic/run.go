package automagic

import (
	"context"

	"github.com/vk/memscope/internal/config"
	"github.com/vk/memscope/internal/ctxlog"
)

// Run executes each selected resolver, in order, against the shared store.
// Errors are accumulated, never fatal: a resolver that cannot satisfy part
// of the tree does not stop later resolvers from running, since partial
// progress may still satisfy other branches. The full error list is returned
// to the caller, which decides whether to proceed to construction.
//
// Mutating cfg here is the only sanctioned mutation path during resolution.
func Run(ctx context.Context, selected []Automagic, cfg *config.Context, req *config.Requirement, basePath string) []*ResolutionError {
	logger := ctxlog.FromContext(ctx)
	var errs []*ResolutionError
	for _, a := range selected {
		logger.Debug("Running automagic.", "automagic", a.Name(), "priority", a.Priority())
		for _, err := range a.Resolve(ctx, cfg, req, basePath) {
			re, ok := err.(*ResolutionError)
			if !ok {
				re = &ResolutionError{Err: err}
			}
			if re.Automagic == "" {
				re.Automagic = a.Name()
			}
			errs = append(errs, re)
		}
		logger.Debug("Automagic finished.", "automagic", a.Name(), "errors_so_far", len(errs))
	}
	return errs
}
