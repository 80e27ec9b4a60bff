// Package walk pages through a user's rating listing, parsing the rated
// rows on each page and deduplicating them until the source runs out of
// new material or a configured limit stops the walk early.
package walk
