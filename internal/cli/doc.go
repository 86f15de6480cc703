// Package cli defines the Cobra command tree for the serialcheck CLI. The
// root command takes a single mode argument ("True" to
// generate, "False" to compare); subcommands expose the same workflows with
// flags. Command implementations delegate to internal packages and only
// handle flag parsing and output formatting.
package cli
