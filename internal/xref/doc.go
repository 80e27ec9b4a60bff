// Package xref resolves titles against the external reference site when
// direct extraction from the detail page comes up empty.
//
// This is a genuine search with candidate scoring, unlike the cascades in
// package extract where declared order alone decides. The structured
// suggestion payload is preferred over scraping the find page because
// external markup drifts more than the JSON shape. Search never fails:
// network errors, empty result lists, and all-zero scores alike produce an
// empty Match, and the caller's dataset field simply stays blank.
package xref
