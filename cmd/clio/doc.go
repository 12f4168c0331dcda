// Package main hosts the Clio CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into HTTP
// calls against the Kleio collection server: browsing and searching the
// collection, logging plays and cleanings, managing styluses, rendering play
// statistics, and following server-side syncs. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
