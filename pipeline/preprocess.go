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
	"log/slog"
	"strings"

	"github.com/poiesic/sentable/ai"
)

// Preprocessor normalizes raw text before it is handed to a classifier.
// It trims surrounding whitespace and truncates texts that exceed the
// model's input window. It is stateless and safe for concurrent use.
type Preprocessor struct {
	maxChars int
	logger   *slog.Logger
}

// NewPreprocessor creates a preprocessor sized to the given model config.
// The effective limit is MaxInputLength minus ReservedTokens, leaving room
// for the special tokens the model adds around the text.
func NewPreprocessor(config *ai.Config, logger *slog.Logger) *Preprocessor {
	if config == nil {
		config = ai.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	maxChars := config.MaxInputLength - config.ReservedTokens
	if maxChars < 1 {
		maxChars = 1
	}

	return &Preprocessor{
		maxChars: maxChars,
		logger:   logger,
	}
}

// Preprocess trims and, when necessary, truncates a single text.
// Truncation is logged at warning level so oversized inputs are visible.
func (p *Preprocessor) Preprocess(text string) string {
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= p.maxChars {
		return text
	}

	p.logger.Warn("truncating oversized text",
		"length", len(runes),
		"limit", p.maxChars)
	return string(runes[:p.maxChars])
}

// PreprocessAll applies Preprocess to every text, preserving order.
func (p *Preprocessor) PreprocessAll(texts []string) []string {
	prepared := make([]string, len(texts))
	for i, text := range texts {
		prepared[i] = p.Preprocess(text)
	}
	return prepared
}
