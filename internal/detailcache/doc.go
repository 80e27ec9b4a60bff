// Package detailcache persists enrichment results across harvest runs so a
// re-run only fetches detail pages for items it has never seen.
//
// Keys are sourceURL + "::details"; values carry the full enrichment subset,
// so a hit skips every network call for the item. Entries are tri-state:
// resolved, confirmed not-found, or absent (never looked up). Confirmed
// absences are cached deliberately, otherwise permanently unmatched items
// would cost a cross-reference search on every run. Entries never expire.
package detailcache
