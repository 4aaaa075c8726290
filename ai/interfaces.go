package ai

import "context"

// LabelScore is one (label, score) pair returned by a classifier.
// Scores are probabilities over the classifier's label set; the pairs carry
// no ordering guarantee.
type LabelScore struct {
	// Label is the sentiment label, one of the classifier's label set.
	Label string

	// Score is the classifier's probability for the label, in [0, 1].
	Score float64
}

// Classifier scores texts against a sentiment label set.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// ClassifyTexts classifies a batch of texts in a single invocation.
	// The returned outer slice has one entry per input text, in input order;
	// each inner slice spans the classifier's full label set.
	// A non-nil error means the whole batch failed; callers decide how to
	// contain the failure.
	ClassifyTexts(ctx context.Context, texts []string) ([][]LabelScore, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Classifier instances, ensuring
// they share configuration and resources appropriately.
type Provider interface {
	// Classifier returns the sentiment classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
