// Package config defines the shared configuration store for one analysis
// run and the requirement trees plugins use to declare the configuration
// they need.
//
// The `config.Context` is the single mutable resource of a run: automagics
// write resolved values into it, and plugin construction validates against
// it. Requirement trees are read-only declarations owned by plugin
// definitions.
package config
