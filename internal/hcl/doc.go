// Package hcl loads run profiles: HCL files naming the memory image
// location, the plugin to run, and any configuration overrides to apply
// before resolution begins.
package hcl
