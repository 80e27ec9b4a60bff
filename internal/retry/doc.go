// Package retry bounds fallible operations with attempt limits and
// exponential backoff.
//
// The walker retries page loads with a fixed inter-attempt delay and the
// enrichment pool retries whole detail fetches with doubling backoff; both go
// through Do/Run here. Exhaustion surfaces as ErrExhausted wrapping the last
// underlying error so callers can degrade instead of aborting.
package retry
