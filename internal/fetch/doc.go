// Package fetch serves repository metadata, preferring the cache and going
// to GitHub only when a record is missing or expired.
//
// # Refresh Rules
//
//   - Fresh record: returned as is, no network.
//   - Expired record: a conditional request is made with the record's
//     validator. Not Modified stores a copy with a new fetch time; new data
//     replaces the record.
//   - Remote failure with a record: the old metadata is returned with
//     Stale set. This is not an error.
//   - Remote failure without a record: ErrMetadataUnavailable.
//
// Concurrent requests for the same repository share one remote call. That
// call is detached from the caller's cancellation and bounded by the request
// timeout, so an interrupted caller still leaves a warm cache behind.
package fetch
