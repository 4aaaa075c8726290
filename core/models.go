package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorLabel is the sentinel predicted sentiment assigned to every record of
// a batch whose classifier invocation failed.
const ErrorLabel = "ERROR"

// LabelScore is a single (label, score) pair produced by a classifier.
// A classifier returns one LabelScore per label in its label set, in no
// particular score order.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult holds the classifier output for a single text.
// For failed batches a sentinel result is produced instead; see ErrorResult.
type ClassificationResult struct {
	Text               string       `json:"text"`
	Scores             []LabelScore `json:"sentiment_scores"`
	PredictedSentiment string       `json:"predicted_sentiment"`
	Confidence         float64      `json:"confidence"`
	ErrorMessage       string       `json:"error,omitempty"`
}

// NewResult builds a ClassificationResult from raw classifier scores.
// The predicted sentiment is the label with the maximal score; when two
// labels tie, the first one in the classifier's output order wins.
func NewResult(text string, scores []LabelScore) ClassificationResult {
	result := ClassificationResult{
		Text:   text,
		Scores: scores,
	}
	for _, ls := range scores {
		if result.PredictedSentiment == "" || ls.Score > result.Confidence {
			result.PredictedSentiment = ls.Label
			result.Confidence = ls.Score
		}
	}
	return result
}

// ErrorResult builds the sentinel result for a text whose batch failed.
// Scores is empty but non-nil so serialization always yields a valid array.
func ErrorResult(text string, cause error) ClassificationResult {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return ClassificationResult{
		Text:               text,
		Scores:             []LabelScore{},
		PredictedSentiment: ErrorLabel,
		Confidence:         0.0,
		ErrorMessage:       message,
	}
}

// IsError reports whether the result is a sentinel produced for a failed batch.
func (r *ClassificationResult) IsError() bool {
	return r.PredictedSentiment == ErrorLabel && len(r.Scores) == 0
}

// InputRecord is a single record of the input data set.
// The well-known fields are lifted out during JSON decoding; everything else
// is preserved untouched in Extra so enrichment is loss-free.
type InputRecord struct {
	ID       string
	Text     string
	Category string
	Source   string
	Extra    map[string]any
}

// wellKnownFields are lifted into struct fields during decoding.
var wellKnownFields = map[string]bool{
	"id":       true,
	"text":     true,
	"category": true,
	"source":   true,
}

// UnmarshalJSON decodes an input record, keeping unknown fields in Extra.
// Numeric IDs are coerced to their decimal string form.
func (r *InputRecord) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = InputRecord{}
	for key, value := range raw {
		if !wellKnownFields[key] {
			if r.Extra == nil {
				r.Extra = map[string]any{}
			}
			r.Extra[key] = value
			continue
		}
		switch key {
		case "id":
			r.ID = stringify(value)
		case "text":
			r.Text = stringify(value)
		case "category":
			r.Category = stringify(value)
		case "source":
			r.Source = stringify(value)
		}
	}
	return nil
}

// MarshalJSON re-assembles the flat record, including preserved extras.
func (r InputRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.jsonMap())
}

// jsonMap returns the record as a flat field map. Empty well-known fields
// are omitted so records round-trip without growing synthetic keys.
func (r *InputRecord) jsonMap() map[string]any {
	m := make(map[string]any, len(r.Extra)+4)
	for key, value := range r.Extra {
		m[key] = value
	}
	if r.ID != "" {
		m["id"] = r.ID
	}
	if r.Text != "" {
		m["text"] = r.Text
	}
	if r.Category != "" {
		m["category"] = r.Category
	}
	if r.Source != "" {
		m["source"] = r.Source
	}
	return m
}

// TextFor resolves the value of the configured text field.
// The second return value reports whether the field was present; callers
// treat an absent field as empty text, not as an error.
func (r *InputRecord) TextFor(field string) (string, bool) {
	switch field {
	case "text":
		return r.Text, r.Text != ""
	case "id":
		return r.ID, r.ID != ""
	case "category":
		return r.Category, r.Category != ""
	case "source":
		return r.Source, r.Source != ""
	default:
		value, ok := r.Extra[field]
		if !ok {
			return "", false
		}
		return stringify(value), true
	}
}

// stringify coerces arbitrary JSON values to their string form.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integral values without a fraction.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SentimentAnalysis is the classification block attached to an enriched record.
type SentimentAnalysis struct {
	PredictedSentiment string       `json:"predicted_sentiment"`
	Confidence         float64      `json:"confidence"`
	AllScores          []LabelScore `json:"all_scores"`
}

// ProcessingMetadata records how and when a record was processed.
type ProcessingMetadata struct {
	ModelUsed   string    `json:"model_used"`
	ProcessedAt time.Time `json:"processed_at"`
	RecordIndex int       `json:"record_id"`
}

// EnrichedRecord is the union of an input record, its classification output,
// and run metadata. It is derived once per run and never mutated.
type EnrichedRecord struct {
	Input      InputRecord
	Sentiment  SentimentAnalysis
	Processing ProcessingMetadata
}

// MarshalJSON flattens the input record's fields and nests the sentiment and
// metadata blocks beside them, matching the enriched wire format.
func (e EnrichedRecord) MarshalJSON() ([]byte, error) {
	m := e.Input.jsonMap()
	m["sentiment_analysis"] = e.Sentiment
	m["processing_metadata"] = e.Processing
	return json.Marshal(m)
}

// ResultEntity is the flattened, write-once row persisted to the results
// table. PartitionKey groups one calendar day of runs; RowKey is unique
// within the partition for a single run.
type ResultEntity struct {
	PartitionKey       string
	RowKey             string
	OriginalID         string
	Text               string
	Category           string
	Source             string
	PredictedSentiment string
	Confidence         float64
	AllScoresJSON      string
	ModelUsed          string
	ProcessedAt        time.Time
	RecordID           int
	InsertedAt         time.Time
	BatchID            string
}

// Summary aggregates the full persisted population of a results table.
// It is cumulative across runs, not scoped to the most recent one.
type Summary struct {
	TotalRecords          int            `json:"total_records"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	LatestProcessedAt     time.Time      `json:"latest_processed_at"`
	TableName             string         `json:"table_name"`
}
