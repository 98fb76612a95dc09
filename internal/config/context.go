package config

import (
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Separator joins the segments of a configuration path.
const Separator = "."

// Join builds a dotted configuration path from its segments, skipping empty
// ones so callers can pass an empty base path.
func Join(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, Separator)
}

// Context is the mutable configuration store shared across one analysis run.
// Automagics and the construction stage write into it; nothing outlives the
// run. It is not safe for concurrent use: the driver is single-threaded and
// stage-sequential.
type Context struct {
	values map[string]cty.Value
}

// NewContext creates an empty configuration store.
func NewContext() *Context {
	return &Context{values: make(map[string]cty.Value)}
}

// Set stores a value under the given dotted path, replacing any previous value.
func (c *Context) Set(path string, val cty.Value) {
	c.values[path] = val
}

// Get returns the value stored under the given path.
func (c *Context) Get(path string) (cty.Value, bool) {
	val, ok := c.values[path]
	return val, ok
}

// Has reports whether a value is stored under the given path.
func (c *Context) Has(path string) bool {
	_, ok := c.values[path]
	return ok
}

// Delete removes the value stored under the given path, if any.
func (c *Context) Delete(path string) {
	delete(c.values, path)
}

// Len returns the number of stored values.
func (c *Context) Len() int {
	return len(c.values)
}

// Paths returns every stored path in lexicographic order. Iteration over the
// store must never depend on map order; this is the sanctioned way to walk it.
func (c *Context) Paths() []string {
	paths := make([]string, 0, len(c.values))
	for p := range c.values {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Branch returns the entries under the given path prefix, keyed by their
// path relative to it. An empty prefix returns a copy of the whole store.
func (c *Context) Branch(prefix string) map[string]cty.Value {
	branch := make(map[string]cty.Value)
	if prefix == "" {
		for p, v := range c.values {
			branch[p] = v
		}
		return branch
	}
	for p, v := range c.values {
		if strings.HasPrefix(p, prefix+Separator) {
			branch[strings.TrimPrefix(p, prefix+Separator)] = v
		}
	}
	return branch
}
