// Package main hosts the ucclean CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the filing dedup pipeline, explains
// designation priorities, inspects run history, and scaffolds configuration.
// It centralizes configuration resolution and logger setup so subcommands can
// focus on presentation.
//
// Keep this package lean: behavior belongs in the internal packages, and
// commands here only translate flags into options and render results.
package main
