// Package cli wires together the Cobra command tree for the gitscribe
// binary.
//
// It defines the root command and all subcommands (generate, commit,
// amend-unpushed, fix, status, lint, watch, config, hook, version), binds
// flags, reads configuration, invokes the planner and applier, and returns
// deterministic exit codes for scripting and git hooks.
package cli
