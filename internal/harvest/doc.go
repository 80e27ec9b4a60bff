// Package harvest orchestrates a full collection run: acquire the instance
// lock, walk the rating listing, enrich every item through the detail
// pipeline, and persist the CSV, JSON, and catalog outputs.
package harvest
