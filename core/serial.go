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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ResultEntityMUS serializes ResultEntity values in the MUS format.
// Timestamps are stored as Unix microseconds.
var ResultEntityMUS = resultEntityMUS{}

type resultEntityMUS struct{}

// Marshal writes the entity into bs and returns the number of bytes written.
// bs must be at least Size(entity) bytes long.
func (resultEntityMUS) Marshal(entity ResultEntity, bs []byte) (n int) {
	n = ord.String.Marshal(entity.PartitionKey, bs)
	n += ord.String.Marshal(entity.RowKey, bs[n:])
	n += ord.String.Marshal(entity.OriginalID, bs[n:])
	n += ord.String.Marshal(entity.Text, bs[n:])
	n += ord.String.Marshal(entity.Category, bs[n:])
	n += ord.String.Marshal(entity.Source, bs[n:])
	n += ord.String.Marshal(entity.PredictedSentiment, bs[n:])
	n += varint.Float64.Marshal(entity.Confidence, bs[n:])
	n += ord.String.Marshal(entity.AllScoresJSON, bs[n:])
	n += ord.String.Marshal(entity.ModelUsed, bs[n:])
	n += varint.Int64.Marshal(entity.ProcessedAt.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(entity.RecordID, bs[n:])
	n += varint.Int64.Marshal(entity.InsertedAt.UnixMicro(), bs[n:])
	n += ord.String.Marshal(entity.BatchID, bs[n:])
	return n
}

// Unmarshal reads an entity from bs.
func (resultEntityMUS) Unmarshal(bs []byte) (entity ResultEntity, n int, err error) {
	var n1 int
	entity.PartitionKey, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	entity.RowKey, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.OriginalID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.PredictedSentiment, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.Confidence, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.AllScoresJSON, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.ModelUsed, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var processedAt int64
	processedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.ProcessedAt = time.UnixMicro(processedAt).UTC()
	entity.RecordID, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var insertedAt int64
	insertedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	entity.InsertedAt = time.UnixMicro(insertedAt).UTC()
	entity.BatchID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

// Size returns the number of bytes Marshal will write for the entity.
func (resultEntityMUS) Size(entity ResultEntity) (size int) {
	size = ord.String.Size(entity.PartitionKey)
	size += ord.String.Size(entity.RowKey)
	size += ord.String.Size(entity.OriginalID)
	size += ord.String.Size(entity.Text)
	size += ord.String.Size(entity.Category)
	size += ord.String.Size(entity.Source)
	size += ord.String.Size(entity.PredictedSentiment)
	size += varint.Float64.Size(entity.Confidence)
	size += ord.String.Size(entity.AllScoresJSON)
	size += ord.String.Size(entity.ModelUsed)
	size += varint.Int64.Size(entity.ProcessedAt.UnixMicro())
	size += varint.Int.Size(entity.RecordID)
	size += varint.Int64.Size(entity.InsertedAt.UnixMicro())
	size += ord.String.Size(entity.BatchID)
	return size
}

// Skip advances past one serialized entity without decoding it.
func (s resultEntityMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
