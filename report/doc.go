// Package report aggregates persisted classification results.
//
// The Summarizer scans a results table and produces a cumulative summary:
// total record count, sentiment distribution, and the most recent
// processing timestamp. Summaries cover everything ever persisted to the
// table, not a single run.
package report
