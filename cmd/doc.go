// Package cmd implements the command-line interface for the dDict durable
// dictionary. It provides a hierarchical command structure for inspecting and
// modifying a store from the shell.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for dictionary operations (get, set, list)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See ddict -help for a list of all commands.
package cmd
