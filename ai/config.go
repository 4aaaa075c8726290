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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for sentiment classification providers.
type Config struct {
	// ClassifierHost is the base URL for the classification service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	ClassifierHost string

	// ClassifierModel is the model identifier to use for sentiment scoring.
	// Example: "cardiffnlp/twitter-roberta-base-sentiment-latest"
	ClassifierModel string

	// MaxInputLength is the model's input window in characters.
	// Texts longer than MaxInputLength - ReservedTokens are truncated before
	// classification.
	// Default: 514
	MaxInputLength int

	// ReservedTokens is the part of the input window held back for the
	// model's special tokens.
	// Default: 2
	ReservedTokens int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithClassifierHost sets the classifier service host URL.
func WithClassifierHost(host string) ConfigOption {
	return func(c *Config) {
		c.ClassifierHost = host
	}
}

// WithClassifierModel sets the classifier model identifier.
func WithClassifierModel(model string) ConfigOption {
	return func(c *Config) {
		c.ClassifierModel = model
	}
}

// WithMaxInputLength sets the model input window in characters.
func WithMaxInputLength(length int) ConfigOption {
	return func(c *Config) {
		c.MaxInputLength = length
	}
}

// WithReservedTokens sets the number of input characters reserved for the
// model's special tokens.
func WithReservedTokens(reserved int) ConfigOption {
	return func(c *Config) {
		c.ReservedTokens = reserved
	}
}

// DefaultConfig returns a Config with defaults for local OpenAI-compatible
// services and the reference sentiment model.
func DefaultConfig() *Config {
	return &Config{
		ClassifierHost:  "http://localhost:11434/v1",
		ClassifierModel: "cardiffnlp/twitter-roberta-base-sentiment-latest",
		MaxInputLength:  514,
		ReservedTokens:  2,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithClassifierHost("http://localhost:11434/v1"),
//	    ai.WithClassifierModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.ClassifierHost != "" && !strings.HasSuffix(c.ClassifierHost, "/v1") {
		c.ClassifierHost = strings.TrimSuffix(c.ClassifierHost, "/")
		c.ClassifierHost = c.ClassifierHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.ClassifierHost == "" {
		return errors.New("ai config: ClassifierHost is required")
	}
	if c.ClassifierModel == "" {
		return errors.New("ai config: ClassifierModel is required")
	}
	if c.MaxInputLength < 1 {
		return errors.New("ai config: MaxInputLength must be positive")
	}
	if c.ReservedTokens < 0 || c.ReservedTokens >= c.MaxInputLength {
		return errors.New("ai config: ReservedTokens must be non-negative and smaller than MaxInputLength")
	}
	return nil
}
