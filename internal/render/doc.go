// Package render supplies the "render a page and query its DOM" collaborator
// the rest of the pipeline depends on.
//
// Page wraps a parsed goquery document with its URL so extraction tactics can
// both select nodes and resolve relative hrefs. HTTPFetcher is the production
// Fetcher: one shared cookie jar (consent pre-seeded), a per-request timeout,
// and a token-bucket rate limit shared by every worker. Tests substitute a
// stub Fetcher built from fixture HTML via NewPageFromString.
package render
