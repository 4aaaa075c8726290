package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateEntity(t *testing.T) {
	valid := ResultEntity{
		PartitionKey:       "2025-06-02",
		RowKey:             "000000_a1b2c3d4",
		Text:               "fine",
		PredictedSentiment: "positive",
		Confidence:         0.8,
		AllScoresJSON:      `[{"label":"positive","score":0.8}]`,
		ProcessedAt:        time.Now().UTC(),
		InsertedAt:         time.Now().UTC(),
	}

	tests := []struct {
		name    string
		mutate  func(e *ResultEntity)
		wantErr error
	}{
		{
			name:    "valid entity",
			mutate:  func(e *ResultEntity) {},
			wantErr: nil,
		},
		{
			name:    "empty scores array is valid",
			mutate:  func(e *ResultEntity) { e.AllScoresJSON = "[]" },
			wantErr: nil,
		},
		{
			name:    "missing partition key",
			mutate:  func(e *ResultEntity) { e.PartitionKey = "" },
			wantErr: ErrMissingPartitionKey,
		},
		{
			name:    "missing row key",
			mutate:  func(e *ResultEntity) { e.RowKey = "" },
			wantErr: ErrMissingRowKey,
		},
		{
			name:    "malformed scores json",
			mutate:  func(e *ResultEntity) { e.AllScoresJSON = "{not json" },
			wantErr: ErrInvalidScoresJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity := valid
			tt.mutate(&entity)

			err := ValidateEntity(&entity)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEntity() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEntity() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidEntity) {
				t.Errorf("ValidateEntity() error = %v, want wrapped %v", err, ErrInvalidEntity)
			}
		})
	}
}

func TestValidateEntity_Nil(t *testing.T) {
	err := ValidateEntity(nil)
	if !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("ValidateEntity(nil) error = %v, want %v", err, ErrInvalidEntity)
	}
}

func TestValidateBatchSize(t *testing.T) {
	tests := []struct {
		name      string
		batchSize int
		wantErr   bool
	}{
		{name: "one is valid", batchSize: 1, wantErr: false},
		{name: "default size is valid", batchSize: 16, wantErr: false},
		{name: "zero is invalid", batchSize: 0, wantErr: true},
		{name: "negative is invalid", batchSize: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchSize(tt.batchSize)
			if tt.wantErr && !errors.Is(err, ErrInvalidBatchSize) {
				t.Errorf("ValidateBatchSize(%d) error = %v, want %v", tt.batchSize, err, ErrInvalidBatchSize)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateBatchSize(%d) unexpected error: %v", tt.batchSize, err)
			}
		})
	}
}
