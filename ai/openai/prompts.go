package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/sentable/ai"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "scores": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "label": {
                  "type": "string"
                },
                "score": {
                  "type": "number",
                  "minimum": 0,
                  "maximum": 1
                }
              },
              "required": ["label", "score"],
              "additionalProperties": false
            }
          }
        },
        "required": ["scores"],
        "additionalProperties": false
      }
    }
  },
  "required": ["results"],
  "additionalProperties": false
}`

const classificationPromptTemplate = `You are a sentiment classifier. The user message is a JSON array of texts.
Score every text against the full sentiment label set and return the scores as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "results" must contain exactly one entry per input text, in the same order as the input array.
- Every entry's "scores" must contain exactly one pair per label from this set: %s.
- Scores are probabilities; each entry's scores must sum to 1.
- Score the text itself, not your opinion of its topic.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildSystemPrompt assembles the classification system prompt with the
// response schema and the sentiment label set.
func buildSystemPrompt() string {
	labels := strings.Join(ai.SentimentLabels, ", ")
	return fmt.Sprintf(classificationPromptTemplate, classificationResponseSchema, labels)
}
