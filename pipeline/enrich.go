package pipeline

import (
	"time"

	"github.com/poiesic/sentable/core"
)

// Enricher pairs classification results back with the records they came
// from, attaching the sentiment block and processing metadata.
type Enricher struct {
	now func() time.Time
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithClock overrides the time source used for ProcessedAt timestamps.
// Intended for tests.
func WithClock(now func() time.Time) EnricherOption {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEnricher creates an enricher.
func NewEnricher(opts ...EnricherOption) *Enricher {
	e := &Enricher{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich zips records with their results by position. The two slices must
// have the same length; a mismatch returns ErrLengthMismatch and is the
// only failure mode. The result at index i belongs to the record at index i.
func (e *Enricher) Enrich(records []core.InputRecord, results []core.ClassificationResult, modelName string) ([]core.EnrichedRecord, error) {
	if len(records) != len(results) {
		return nil, ErrLengthMismatch
	}

	processedAt := e.now()
	enriched := make([]core.EnrichedRecord, len(records))
	for i, record := range records {
		enriched[i] = core.EnrichedRecord{
			Input: record,
			Sentiment: core.SentimentAnalysis{
				PredictedSentiment: results[i].PredictedSentiment,
				Confidence:         results[i].Confidence,
				AllScores:          results[i].Scores,
			},
			Processing: core.ProcessingMetadata{
				ModelUsed:   modelName,
				ProcessedAt: processedAt,
				RecordIndex: i,
			},
		}
	}
	return enriched, nil
}
