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

package input

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/sentable/core"
)

// Fetcher resolves a named data set to its input records.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]core.InputRecord, error)
}

// FileFetcher reads data sets from JSON files under a container directory.
type FileFetcher struct {
	containerDir string
	logger       *slog.Logger
}

var _ Fetcher = (*FileFetcher)(nil)

// NewFileFetcher creates a fetcher rooted at containerDir.
func NewFileFetcher(containerDir string, logger *slog.Logger) *FileFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileFetcher{
		containerDir: containerDir,
		logger:       logger,
	}
}

// Fetch loads and decodes the named data set.
// The file must contain a JSON array of records; anything else is an
// ErrInvalidDataSet.
func (f *FileFetcher) Fetch(ctx context.Context, name string) ([]core.InputRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.containerDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataSetNotFound, name)
		}
		return nil, fmt.Errorf("failed to read data set %s: %w", name, err)
	}

	var records []core.InputRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDataSet, name, err)
	}

	f.logger.Info("loaded data set",
		"name", name,
		"records", len(records))
	return records, nil
}

// Texts extracts the classification column from records.
// A record that lacks the field contributes an empty string and a warning;
// absent text is a data-shape issue, not an error.
func Texts(records []core.InputRecord, field string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	texts := make([]string, len(records))
	for i := range records {
		text, ok := records[i].TextFor(field)
		if !ok {
			logger.Warn("record missing text field",
				"index", i,
				"field", field)
		}
		texts[i] = text
	}
	return texts
}
