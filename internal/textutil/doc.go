// Package textutil provides the text cleanup helpers shared by the walker,
// extraction cascades, and cross-reference search.
//
// NormalizeTitle is idempotent and produces the canonical form used in dedup
// keys and search queries. FoldForComparison strips diacritics and case so
// Czech-accented source titles compare against IMDb candidates. Description
// helpers enforce the fixed blurb budget with sentence-boundary truncation.
package textutil
