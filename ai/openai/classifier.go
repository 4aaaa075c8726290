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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sentable/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// labelScore is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// scoredText is one classified input in the LLM's JSON response.
type scoredText struct {
	Scores []labelScore `json:"scores"`
}

// batchAnalysis is the wrapper structure for the LLM's JSON response.
type batchAnalysis struct {
	Results []scoredText `json:"results"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new sentiment classifier using the provided
// configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// ClassifyTexts scores a batch of texts against the sentiment label set in a
// single model invocation. The result has one score list per input text, in
// input order, each spanning the full label set.
func (c *Classifier) ClassifyTexts(ctx context.Context, texts []string) ([][]ai.LabelScore, error) {
	if len(texts) == 0 {
		return [][]ai.LabelScore{}, nil
	}

	payload, err := json.Marshal(texts)
	if err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(string(payload)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var analysis batchAnalysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("classifier returned no choices")
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", lastErr)
	}

	if len(analysis.Results) != len(texts) {
		return nil, fmt.Errorf("classifier result count mismatch: expected %d, got %d",
			len(texts), len(analysis.Results))
	}

	results := make([][]ai.LabelScore, len(analysis.Results))
	for i, scored := range analysis.Results {
		scores := make([]ai.LabelScore, 0, len(scored.Scores))
		for _, ls := range scored.Scores {
			if !ai.IsKnownLabel(ls.Label) {
				c.logger.Warn("dropping unknown label from classifier response", "label", ls.Label)
				continue
			}
			scores = append(scores, ai.LabelScore{Label: ls.Label, Score: ls.Score})
		}
		if len(scores) == 0 {
			return nil, fmt.Errorf("classifier returned no usable scores for text %d", i)
		}
		results[i] = scores
	}

	return results, nil
}
