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
	"encoding/json"
	"fmt"
)

// ValidateEntity validates a ResultEntity according to domain rules.
//
// Validation rules:
//   - PartitionKey must not be empty
//   - RowKey must not be empty
//   - AllScoresJSON must parse as a JSON array (empty array is valid)
//
// NOT validated:
//   - PredictedSentiment (the sentinel ERROR label is a legal value)
//   - Confidence (0.0 is the sentinel confidence)
func ValidateEntity(entity *ResultEntity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if entity.PartitionKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrMissingPartitionKey)
	}

	if entity.RowKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrMissingRowKey)
	}

	var scores []LabelScore
	if err := json.Unmarshal([]byte(entity.AllScoresJSON), &scores); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrInvalidScoresJSON)
	}

	return nil
}

// ValidateBatchSize validates a classification batch size.
func ValidateBatchSize(batchSize int) error {
	if batchSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return nil
}
