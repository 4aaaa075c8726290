// Package input loads the records a classification run operates on.
//
// A Fetcher resolves a named data set to its records. FileFetcher is the
// filesystem implementation: data sets are JSON array files under a
// container directory. Texts extracts the classification column from a
// loaded record set, tolerating records that lack the configured field.
package input
