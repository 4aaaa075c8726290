// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/sentable/core"
)

// defaultFieldCap bounds the stored Text field. Oversized texts are
// truncated silently; the full text was already classified.
const defaultFieldCap = 32000

// rowKeyTokenLength is the number of UUID characters appended to the
// zero-padded index to make row keys unique across runs within a partition.
const rowKeyTokenLength = 8

// EntityMapper converts enriched records into storable result entities.
// One mapper serves one run: the partition key and batch ID are fixed at
// construction so every entity of the run lands in the same partition and
// carries the same run identifier.
type EntityMapper struct {
	partitionKey string
	batchID      string
	fieldCap     int
	now          func() time.Time
}

// MapperOption configures an EntityMapper.
type MapperOption func(*EntityMapper)

// WithFieldCap overrides the maximum stored text length.
func WithFieldCap(limit int) MapperOption {
	return func(m *EntityMapper) {
		if limit > 0 {
			m.fieldCap = limit
		}
	}
}

// WithMapperClock overrides the time source used for InsertedAt timestamps.
// Intended for tests.
func WithMapperClock(now func() time.Time) MapperOption {
	return func(m *EntityMapper) {
		if now != nil {
			m.now = now
		}
	}
}

// NewEntityMapper creates a mapper for a run starting at runDate.
// The partition key is the run's calendar date and the batch ID is a fresh
// run-level UUID shared by every entity the mapper produces.
func NewEntityMapper(runDate time.Time, opts ...MapperOption) *EntityMapper {
	m := &EntityMapper{
		partitionKey: runDate.UTC().Format("2006-01-02"),
		batchID:      uuid.NewString(),
		fieldCap:     defaultFieldCap,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PartitionKey returns the partition key all of this mapper's entities share.
func (m *EntityMapper) PartitionKey() string {
	return m.partitionKey
}

// BatchID returns the run-level identifier stamped on every entity.
func (m *EntityMapper) BatchID() string {
	return m.batchID
}

// ToEntity maps one enriched record at run position i to a result entity.
// The row key is the zero-padded position plus a fresh random token, so
// entities from different runs on the same day never collide.
func (m *EntityMapper) ToEntity(record *core.EnrichedRecord, i int) *core.ResultEntity {
	return &core.ResultEntity{
		PartitionKey:       m.partitionKey,
		RowKey:             fmt.Sprintf("%06d_%s", i, uuid.NewString()[:rowKeyTokenLength]),
		OriginalID:         record.Input.ID,
		Text:               truncate(record.Input.Text, m.fieldCap),
		Category:           record.Input.Category,
		Source:             record.Input.Source,
		PredictedSentiment: record.Sentiment.PredictedSentiment,
		Confidence:         record.Sentiment.Confidence,
		AllScoresJSON:      scoresJSON(record.Sentiment.AllScores),
		ModelUsed:          record.Processing.ModelUsed,
		ProcessedAt:        record.Processing.ProcessedAt,
		RecordID:           record.Processing.RecordIndex,
		InsertedAt:         m.now(),
		BatchID:            m.batchID,
	}
}

// ToEntities maps a full run of enriched records, preserving order.
func (m *EntityMapper) ToEntities(records []core.EnrichedRecord) []*core.ResultEntity {
	entities := make([]*core.ResultEntity, len(records))
	for i := range records {
		entities[i] = m.ToEntity(&records[i], i)
	}
	return entities
}

// scoresJSON serializes scores, yielding "[]" rather than "null" when empty.
func scoresJSON(scores []core.LabelScore) string {
	if len(scores) == 0 {
		return "[]"
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
