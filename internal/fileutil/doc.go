// Package fileutil provides atomic file-write helpers shared by the cache,
// run-state, and dataset persistence layers.
package fileutil
