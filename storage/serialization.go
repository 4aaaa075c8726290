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


package storage

import (
	"fmt"

	"github.com/poiesic/sentable/core"
)

// MarshalResultEntity serializes a ResultEntity to bytes.
func MarshalResultEntity(entity *core.ResultEntity) []byte {
	buf := make([]byte, core.ResultEntityMUS.Size(*entity))
	core.ResultEntityMUS.Marshal(*entity, buf)
	return buf
}

// UnmarshalResultEntity deserializes a ResultEntity from bytes.
func UnmarshalResultEntity(data []byte) (*core.ResultEntity, error) {
	entity, _, err := core.ResultEntityMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entity, nil
}
