// Package pipeline provides orchestration for batch sentiment classification.
//
// The stages mirror the flow of a run:
//   - Preprocessor normalizes raw text before inference
//   - BatchEngine splits records into fixed-size batches and classifies them
//   - Enricher pairs classification results back with their input records
//   - EntityMapper converts enriched records into storable entities
//   - Persister writes entities to a result repository
//
// Batches are processed concurrently using worker pools. A failed batch never
// aborts a run; its records receive sentinel error results and the remaining
// batches proceed.
package pipeline
