// Package extract pulls enrichment fields out of rendered detail pages using
// ordered cascades of independent tactics.
//
// A Cascade tries its tactics in declared order and the first non-empty
// result wins; there is no scoring between tactics, unlike the candidate
// ranking in package xref. Each field has its own cascade: the IMDb id runs
// from the site's dedicated button down to a raw-text regex, the original
// title covers both current and legacy markup before structured data, and
// the secondary fields (genre, director, cast, description) carry short
// cascades of their own. ParentURL supports the one-shot show-level retry for
// episode and season pages.
package extract
