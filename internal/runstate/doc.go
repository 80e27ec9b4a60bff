// Package runstate checkpoints harvest progress so a killed multi-hour run
// resumes from the last completed page instead of page one.
//
// The walker saves every few pages; the orchestrator loads the snapshot when
// the resume flag is set and clears it after a fully successful run. An
// interrupt therefore only loses the items collected since the last write.
package runstate
