// Package automagic implements selection and execution of heuristic
// configuration resolvers. A resolver opportunistically fills part of a
// plugin's requirement tree from whatever the store already holds; the seed
// is a single image location written before resolution begins.
package automagic

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vk/memscope/internal/config"
)

// SingleLocationKey is the store path the image location is seeded under
// before any resolver runs. It is the only external input resolution needs.
const SingleLocationKey = "automagic.single_location"

// Automagic is the capability every heuristic resolver provides. Resolvers
// must communicate failure through Resolve's return value; they must not
// panic, and they must not mutate the requirement tree.
type Automagic interface {
	// Name uniquely identifies the resolver within the catalog.
	Name() string

	// Priority orders execution; lower values run earlier. A resolver that
	// consumes values produced by another must declare a higher priority.
	Priority() int

	// Applicable reports whether the resolver can contribute to any part of
	// the given requirement tree. It must be a pure function.
	Applicable(req *config.Requirement) bool

	// Resolve attempts to satisfy part of the requirement tree rooted under
	// basePath, writing resolved values into cfg. It returns one error per
	// requirement it tried and failed to satisfy; an empty result means it
	// resolved everything it recognised.
	Resolve(ctx context.Context, cfg *config.Context, req *config.Requirement, basePath string) []error
}

// ResolutionError records a requirement an automagic could not satisfy.
// Individually non-fatal: the driver accumulates these across all resolvers
// and leaves the proceed/abort decision to the caller.
type ResolutionError struct {
	Automagic string
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("automagic %q: %v", e.Automagic, e.Err)
	}
	return fmt.Sprintf("automagic %q could not satisfy %q: %v", e.Automagic, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// LocationPath converts a seeded location value into a local filesystem
// path. Both bare paths and file:// URIs are accepted; any other URI scheme
// is rejected since the driver only analyses local images.
func LocationPath(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("image location is empty")
	}
	if !strings.Contains(location, "://") {
		return location, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid image location %q: %w", location, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported image location scheme %q", u.Scheme)
	}
	if u.Path == "" {
		return "", fmt.Errorf("image location %q has no path", location)
	}
	return u.Path, nil
}
