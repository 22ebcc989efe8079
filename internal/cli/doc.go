// Package cli defines the Cobra command tree for the pkgtmpl CLI. Each file
// registers one top-level command (generate, init, validate, config, version)
// with the root command. Commands parse flags and format output; the work is
// done by the template, generator and materialize packages.
package cli
