package mock

import (
	"context"
	"strings"

	"github.com/poiesic/sentable/ai"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyTextsFunc is called by ClassifyTexts if set.
	// If nil, uses default deterministic keyword scoring.
	ClassifyTextsFunc func(ctx context.Context, texts []string) ([][]ai.LabelScore, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default deterministic
// behavior. Note: Returns concrete type to allow test assertions via
// GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// positiveWords and negativeWords drive the default keyword scoring.
var (
	positiveWords = []string{"good", "great", "love", "excellent", "wonderful", "happy", "best"}
	negativeWords = []string{"bad", "awful", "hate", "terrible", "horrible", "sad", "worst"}
)

// ClassifyTexts scores texts with a simple deterministic keyword heuristic.
// Default behavior: texts containing positive keywords lean positive, texts
// containing negative keywords lean negative, everything else is neutral.
func (m *MockClassifier) ClassifyTexts(ctx context.Context, texts []string) ([][]ai.LabelScore, error) {
	m.callCount++

	if m.ClassifyTextsFunc != nil {
		return m.ClassifyTextsFunc(ctx, texts)
	}

	results := make([][]ai.LabelScore, len(texts))
	for i, text := range texts {
		results[i] = keywordScores(text)
	}
	return results, nil
}

// CallCount returns the number of times ClassifyTexts was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyTextsFunc = nil
}

// keywordScores produces a deterministic full-label-set score list for text.
func keywordScores(text string) []ai.LabelScore {
	lowered := strings.ToLower(text)

	positives := 0
	for _, word := range positiveWords {
		if strings.Contains(lowered, word) {
			positives++
		}
	}
	negatives := 0
	for _, word := range negativeWords {
		if strings.Contains(lowered, word) {
			negatives++
		}
	}

	switch {
	case positives > negatives:
		return []ai.LabelScore{
			{Label: "negative", Score: 0.05},
			{Label: "neutral", Score: 0.10},
			{Label: "positive", Score: 0.85},
		}
	case negatives > positives:
		return []ai.LabelScore{
			{Label: "negative", Score: 0.85},
			{Label: "neutral", Score: 0.10},
			{Label: "positive", Score: 0.05},
		}
	default:
		return []ai.LabelScore{
			{Label: "negative", Score: 0.15},
			{Label: "neutral", Score: 0.70},
			{Label: "positive", Score: 0.15},
		}
	}
}
