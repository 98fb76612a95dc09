// Package app wires the application together and drives the analysis
// pipeline: seed the store, select and run automagics, construct the plugin,
// execute it, and flatten the result grid into records.
package app
