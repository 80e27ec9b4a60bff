// Package dataset persists collected items: per-run CSV and JSON exports
// written atomically, and a cumulative SQLite catalog that tracks when each
// item was first and last observed across runs.
package dataset
