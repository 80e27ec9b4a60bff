// Package ratings defines the collected rating item model shared by the
// walker, enrichment pool, and dataset writers.
//
// The (SourceURL, Title) pair is the uniqueness key for a run; Key() is the
// canonical form used by dedup sets and the SQLite catalog. Enrichment fields
// default to empty strings so writers never deal with missing values.
package ratings
