package pipeline

import (
	"testing"
	"time"

	"github.com/poiesic/sentable/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_Enrich(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	enricher := NewEnricher(WithClock(func() time.Time { return fixed }))

	records := []core.InputRecord{
		{ID: "1", Text: "great product", Category: "reviews"},
		{ID: "2", Text: "terrible service", Source: "web"},
	}
	results := []core.ClassificationResult{
		core.NewResult("great product", []core.LabelScore{
			{Label: "positive", Score: 0.9},
			{Label: "negative", Score: 0.1},
		}),
		core.NewResult("terrible service", []core.LabelScore{
			{Label: "positive", Score: 0.2},
			{Label: "negative", Score: 0.8},
		}),
	}

	enriched, err := enricher.Enrich(records, results, "test-model")
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.Equal(t, "1", enriched[0].Input.ID)
	assert.Equal(t, "positive", enriched[0].Sentiment.PredictedSentiment)
	assert.InDelta(t, 0.9, enriched[0].Sentiment.Confidence, 1e-9)
	assert.Len(t, enriched[0].Sentiment.AllScores, 2)

	assert.Equal(t, "negative", enriched[1].Sentiment.PredictedSentiment)

	for i, rec := range enriched {
		assert.Equal(t, "test-model", rec.Processing.ModelUsed)
		assert.Equal(t, fixed, rec.Processing.ProcessedAt)
		assert.Equal(t, i, rec.Processing.RecordIndex)
	}
}

func TestEnricher_Enrich_SentinelResults(t *testing.T) {
	enricher := NewEnricher()

	records := []core.InputRecord{{ID: "1", Text: "whatever"}}
	results := []core.ClassificationResult{core.ErrorResult("whatever", assert.AnError)}

	enriched, err := enricher.Enrich(records, results, "m")
	require.NoError(t, err)
	require.Len(t, enriched, 1)

	assert.Equal(t, core.ErrorLabel, enriched[0].Sentiment.PredictedSentiment)
	assert.Zero(t, enriched[0].Sentiment.Confidence)
	assert.NotNil(t, enriched[0].Sentiment.AllScores)
	assert.Empty(t, enriched[0].Sentiment.AllScores)
}

func TestEnricher_Enrich_LengthMismatch(t *testing.T) {
	enricher := NewEnricher()

	records := []core.InputRecord{{ID: "1"}, {ID: "2"}}
	results := []core.ClassificationResult{{}}

	_, err := enricher.Enrich(records, results, "m")
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEnricher_Enrich_Empty(t *testing.T) {
	enricher := NewEnricher()

	enriched, err := enricher.Enrich(nil, nil, "m")
	require.NoError(t, err)
	assert.Empty(t, enriched)
}
