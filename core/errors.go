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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntity indicates a ResultEntity failed validation.
	ErrInvalidEntity = errors.New("invalid result entity")

	// ErrMissingPartitionKey indicates the PartitionKey field is empty.
	ErrMissingPartitionKey = errors.New("partition key cannot be empty")

	// ErrMissingRowKey indicates the RowKey field is empty.
	ErrMissingRowKey = errors.New("row key cannot be empty")

	// ErrInvalidScoresJSON indicates the AllScoresJSON field is not a JSON array.
	ErrInvalidScoresJSON = errors.New("scores field must be a JSON array")

	// ErrInvalidBatchSize indicates a batch size smaller than one.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
)
