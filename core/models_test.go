package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewResult(t *testing.T) {
	tests := []struct {
		name           string
		scores         []LabelScore
		wantLabel      string
		wantConfidence float64
	}{
		{
			name: "single label",
			scores: []LabelScore{
				{Label: "positive", Score: 0.9},
			},
			wantLabel:      "positive",
			wantConfidence: 0.9,
		},
		{
			name: "picks maximal score",
			scores: []LabelScore{
				{Label: "negative", Score: 0.1},
				{Label: "positive", Score: 0.7},
				{Label: "neutral", Score: 0.2},
			},
			wantLabel:      "positive",
			wantConfidence: 0.7,
		},
		{
			name: "tie broken by first seen",
			scores: []LabelScore{
				{Label: "neutral", Score: 0.5},
				{Label: "positive", Score: 0.5},
			},
			wantLabel:      "neutral",
			wantConfidence: 0.5,
		},
		{
			name: "all zero scores keep first label",
			scores: []LabelScore{
				{Label: "negative", Score: 0.0},
				{Label: "positive", Score: 0.0},
			},
			wantLabel:      "negative",
			wantConfidence: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewResult("some text", tt.scores)

			if result.PredictedSentiment != tt.wantLabel {
				t.Errorf("NewResult() label = %q, want %q", result.PredictedSentiment, tt.wantLabel)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("NewResult() confidence = %f, want %f", result.Confidence, tt.wantConfidence)
			}
			if result.Text != "some text" {
				t.Errorf("NewResult() text = %q", result.Text)
			}
		})
	}
}

func TestErrorResult(t *testing.T) {
	result := ErrorResult("bad text", errors.New("inference timed out"))

	if result.PredictedSentiment != ErrorLabel {
		t.Errorf("ErrorResult() label = %q, want %q", result.PredictedSentiment, ErrorLabel)
	}
	if result.Confidence != 0.0 {
		t.Errorf("ErrorResult() confidence = %f, want 0", result.Confidence)
	}
	if result.Scores == nil || len(result.Scores) != 0 {
		t.Errorf("ErrorResult() scores must be empty and non-nil, got %v", result.Scores)
	}
	if result.ErrorMessage != "inference timed out" {
		t.Errorf("ErrorResult() message = %q", result.ErrorMessage)
	}
	if !result.IsError() {
		t.Error("ErrorResult() should report IsError")
	}

	// Sentinel scores must still serialize to a valid empty array.
	data, err := json.Marshal(result.Scores)
	if err != nil {
		t.Fatalf("marshal sentinel scores: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("sentinel scores serialized to %q, want []", string(data))
	}
}

func TestInputRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantID     string
		wantText   string
		wantExtras map[string]any
	}{
		{
			name:     "well-known fields only",
			input:    `{"id": "a1", "text": "great product", "category": "reviews", "source": "web"}`,
			wantID:   "a1",
			wantText: "great product",
		},
		{
			name:     "numeric id is coerced",
			input:    `{"id": 42, "text": "ok"}`,
			wantID:   "42",
			wantText: "ok",
		},
		{
			name:       "unknown fields preserved",
			input:      `{"text": "hello", "rating": 5, "author": "sam"}`,
			wantText:   "hello",
			wantExtras: map[string]any{"rating": float64(5), "author": "sam"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record InputRecord
			if err := json.Unmarshal([]byte(tt.input), &record); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if record.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", record.ID, tt.wantID)
			}
			if record.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", record.Text, tt.wantText)
			}
			for key, want := range tt.wantExtras {
				if got := record.Extra[key]; got != want {
					t.Errorf("Extra[%q] = %v, want %v", key, got, want)
				}
			}
		})
	}
}

func TestInputRecord_PassThroughRoundTrip(t *testing.T) {
	input := `{"id":"7","text":"bad service","mood":"grim","stars":1}`

	var record InputRecord
	if err := json.Unmarshal([]byte(input), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundTripped map[string]any
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}

	if roundTripped["mood"] != "grim" {
		t.Errorf("extra field mood lost in round trip: %v", roundTripped)
	}
	if roundTripped["stars"] != float64(1) {
		t.Errorf("extra field stars lost in round trip: %v", roundTripped)
	}
	if roundTripped["text"] != "bad service" {
		t.Errorf("text lost in round trip: %v", roundTripped)
	}
}

func TestInputRecord_TextFor(t *testing.T) {
	record := InputRecord{
		Text:  "the text",
		Extra: map[string]any{"body": "the body", "stars": float64(3)},
	}

	tests := []struct {
		name      string
		field     string
		want      string
		wantFound bool
	}{
		{name: "default field", field: "text", want: "the text", wantFound: true},
		{name: "extra field", field: "body", want: "the body", wantFound: true},
		{name: "numeric extra coerced", field: "stars", want: "3", wantFound: true},
		{name: "missing field", field: "headline", want: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := record.TextFor(tt.field)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("TextFor(%q) = (%q, %v), want (%q, %v)", tt.field, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestEnrichedRecord_MarshalJSON(t *testing.T) {
	record := EnrichedRecord{
		Input: InputRecord{
			ID:    "r1",
			Text:  "lovely",
			Extra: map[string]any{"lang": "en"},
		},
		Sentiment: SentimentAnalysis{
			PredictedSentiment: "positive",
			Confidence:         0.93,
			AllScores:          []LabelScore{{Label: "positive", Score: 0.93}},
		},
		Processing: ProcessingMetadata{
			ModelUsed:   "test-model",
			RecordIndex: 4,
		},
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m["id"] != "r1" || m["text"] != "lovely" || m["lang"] != "en" {
		t.Errorf("input fields not flattened: %v", m)
	}
	sentiment, ok := m["sentiment_analysis"].(map[string]any)
	if !ok {
		t.Fatalf("sentiment_analysis block missing: %v", m)
	}
	if sentiment["predicted_sentiment"] != "positive" {
		t.Errorf("predicted_sentiment = %v", sentiment["predicted_sentiment"])
	}
	metadata, ok := m["processing_metadata"].(map[string]any)
	if !ok {
		t.Fatalf("processing_metadata block missing: %v", m)
	}
	if metadata["record_id"] != float64(4) {
		t.Errorf("record_id = %v", metadata["record_id"])
	}
}
