package pipeline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/sentable/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowKeyPattern = regexp.MustCompile(`^\d{6}_[0-9a-f]{8}$`)

func enrichedFixture(i int, text string) core.EnrichedRecord {
	return core.EnrichedRecord{
		Input: core.InputRecord{
			ID:       fmt.Sprintf("%d", i),
			Text:     text,
			Category: "reviews",
			Source:   "web",
		},
		Sentiment: core.SentimentAnalysis{
			PredictedSentiment: "positive",
			Confidence:         0.91,
			AllScores: []core.LabelScore{
				{Label: "positive", Score: 0.91},
				{Label: "negative", Score: 0.09},
			},
		},
		Processing: core.ProcessingMetadata{
			ModelUsed:   "test-model",
			ProcessedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			RecordIndex: i,
		},
	}
}

func TestEntityMapper_ToEntity(t *testing.T) {
	runDate := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	inserted := time.Date(2025, 6, 2, 10, 0, 5, 0, time.UTC)
	mapper := NewEntityMapper(runDate, WithMapperClock(func() time.Time { return inserted }))

	rec := enrichedFixture(4, "the service was great")
	entity := mapper.ToEntity(&rec, 4)

	assert.Equal(t, "2025-06-02", entity.PartitionKey)
	assert.Regexp(t, rowKeyPattern, entity.RowKey)
	assert.True(t, strings.HasPrefix(entity.RowKey, "000004_"))
	assert.Equal(t, "4", entity.OriginalID)
	assert.Equal(t, "the service was great", entity.Text)
	assert.Equal(t, "reviews", entity.Category)
	assert.Equal(t, "web", entity.Source)
	assert.Equal(t, "positive", entity.PredictedSentiment)
	assert.InDelta(t, 0.91, entity.Confidence, 1e-9)
	assert.Equal(t, "test-model", entity.ModelUsed)
	assert.Equal(t, rec.Processing.ProcessedAt, entity.ProcessedAt)
	assert.Equal(t, 4, entity.RecordID)
	assert.Equal(t, inserted, entity.InsertedAt)
	assert.Equal(t, mapper.BatchID(), entity.BatchID)

	var scores []core.LabelScore
	require.NoError(t, json.Unmarshal([]byte(entity.AllScoresJSON), &scores))
	require.Len(t, scores, 2)
	assert.Equal(t, "positive", scores[0].Label)
}

func TestEntityMapper_ToEntities(t *testing.T) {
	mapper := NewEntityMapper(time.Now())

	records := make([]core.EnrichedRecord, 10)
	for i := range records {
		records[i] = enrichedFixture(i, fmt.Sprintf("text %d", i))
	}

	entities := mapper.ToEntities(records)
	require.Len(t, entities, 10)

	seen := map[string]bool{}
	for i, entity := range entities {
		assert.True(t, strings.HasPrefix(entity.RowKey, fmt.Sprintf("%06d_", i)))
		assert.False(t, seen[entity.RowKey], "duplicate row key %s", entity.RowKey)
		seen[entity.RowKey] = true
		assert.Equal(t, mapper.PartitionKey(), entity.PartitionKey)
		assert.Equal(t, mapper.BatchID(), entity.BatchID)
	}
}

func TestEntityMapper_TextCap(t *testing.T) {
	mapper := NewEntityMapper(time.Now(), WithFieldCap(100))

	rec := enrichedFixture(0, strings.Repeat("x", 500))
	entity := mapper.ToEntity(&rec, 0)

	assert.Len(t, entity.Text, 100)
}

func TestEntityMapper_SentinelScores(t *testing.T) {
	mapper := NewEntityMapper(time.Now())

	rec := enrichedFixture(0, "bad input")
	rec.Sentiment = core.SentimentAnalysis{
		PredictedSentiment: core.ErrorLabel,
		Confidence:         0.0,
		AllScores:          []core.LabelScore{},
	}

	entity := mapper.ToEntity(&rec, 0)
	assert.Equal(t, "[]", entity.AllScoresJSON)
	assert.NoError(t, core.ValidateEntity(entity))
}

func TestEntityMapper_DistinctRunsDistinctBatchIDs(t *testing.T) {
	a := NewEntityMapper(time.Now())
	b := NewEntityMapper(time.Now())
	assert.NotEqual(t, a.BatchID(), b.BatchID())
}
