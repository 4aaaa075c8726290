package storage

import (
	"testing"
	"time"

	"github.com/poiesic/sentable/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultEntitySerialization(t *testing.T) {
	processedAt := time.Date(2025, 6, 2, 14, 30, 0, 123456000, time.UTC)

	entity := &core.ResultEntity{
		PartitionKey:       "2025-06-02",
		RowKey:             "000004_9f8e7d6c",
		OriginalID:         "42",
		Text:               "the service was surprisingly good",
		Category:           "reviews",
		Source:             "web",
		PredictedSentiment: "positive",
		Confidence:         0.9321,
		AllScoresJSON:      `[{"label":"positive","score":0.9321},{"label":"negative","score":0.0679}]`,
		ModelUsed:          "cardiffnlp/twitter-roberta-base-sentiment-latest",
		ProcessedAt:        processedAt,
		RecordID:           4,
		InsertedAt:         processedAt.Add(2 * time.Second),
		BatchID:            "6b3f1a20",
	}

	data := MarshalResultEntity(entity)
	require.NotEmpty(t, data)

	got, err := UnmarshalResultEntity(data)
	require.NoError(t, err)

	assert.Equal(t, entity.PartitionKey, got.PartitionKey)
	assert.Equal(t, entity.RowKey, got.RowKey)
	assert.Equal(t, entity.OriginalID, got.OriginalID)
	assert.Equal(t, entity.Text, got.Text)
	assert.Equal(t, entity.Category, got.Category)
	assert.Equal(t, entity.Source, got.Source)
	assert.Equal(t, entity.PredictedSentiment, got.PredictedSentiment)
	assert.Equal(t, entity.Confidence, got.Confidence)
	assert.Equal(t, entity.AllScoresJSON, got.AllScoresJSON)
	assert.Equal(t, entity.ModelUsed, got.ModelUsed)
	assert.True(t, entity.ProcessedAt.Equal(got.ProcessedAt), "ProcessedAt: %v vs %v", entity.ProcessedAt, got.ProcessedAt)
	assert.Equal(t, entity.RecordID, got.RecordID)
	assert.True(t, entity.InsertedAt.Equal(got.InsertedAt))
	assert.Equal(t, entity.BatchID, got.BatchID)
}

func TestResultEntitySerialization_SentinelEntity(t *testing.T) {
	// An entity derived from a sentinel error result still serializes; the
	// scores field stays a valid empty JSON array.
	entity := &core.ResultEntity{
		PartitionKey:       "2025-06-02",
		RowKey:             "000001_00000000",
		PredictedSentiment: core.ErrorLabel,
		Confidence:         0.0,
		AllScoresJSON:      "[]",
		ProcessedAt:        time.Now().UTC(),
		InsertedAt:         time.Now().UTC(),
	}

	got, err := UnmarshalResultEntity(MarshalResultEntity(entity))
	require.NoError(t, err)
	assert.Equal(t, core.ErrorLabel, got.PredictedSentiment)
	assert.Equal(t, "[]", got.AllScoresJSON)
	assert.Empty(t, got.Text)
}

func TestUnmarshalResultEntity_Truncated(t *testing.T) {
	entity := &core.ResultEntity{
		PartitionKey:  "2025-06-02",
		RowKey:        "000000_deadbeef",
		AllScoresJSON: "[]",
	}

	data := MarshalResultEntity(entity)
	_, err := UnmarshalResultEntity(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
