// Package config loads, normalizes, and validates the TOML configuration for
// ratingsync.
//
// Load resolves the config path (explicit flag, ~/.config/ratingsync, or a
// project-local ratingsync.toml), overlays the file on top of Default(), and
// expands ~ in every path field. Derived locations (cache file, run-state
// checkpoint, SQLite catalog, lock file) hang off Paths.DataDir unless set
// explicitly.
package config
