// Package logging wraps log/slog with the attribute helpers, field name
// constants, and output handlers used across ratingsync.
//
// Construct the process logger once with New (console or JSON format) and
// derive component loggers with NewComponentLogger. Tests use NewNop to keep
// output quiet. Field constants keep structured keys consistent so a run can
// be filtered by run_id, component, or page in aggregated logs.
package logging
