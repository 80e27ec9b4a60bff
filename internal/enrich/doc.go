// Package enrich runs the detail-page stage: a bounded worker pool that
// fills external identifiers and secondary metadata for every listed item,
// consulting the persistent cache first and falling back to extraction,
// parent-page merging, and a scored title search.
package enrich
