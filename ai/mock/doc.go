// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Classifier and ai.Provider
// for use in unit tests. The mocks allow tests to run without external AI
// service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	scores, err := mockProvider.Classifier().ClassifyTexts(ctx, []string{"great stuff"})
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.ClassifyTextsFunc = func(ctx context.Context, texts []string) ([][]ai.LabelScore, error) {
//	    return nil, errors.New("inference unavailable")
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock classifier scores deterministically from keyword matching: texts
// containing positive keywords lean positive, negative keywords lean
// negative, everything else is neutral. Every score list spans the full
// sentiment label set.
package mock
