// Package main hosts the ratingsync CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into harvest
// runs, cache maintenance, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
package main
