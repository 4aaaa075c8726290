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

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects.
// Example: `, score":` -> `, "score":`
func repairJSON(s string) string {
	src := []rune(s)
	fixed := make([]rune, 0, len(src)+100)

	i := 0
	for i < len(src) {
		ch := src[i]

		// After { or , look for unquoted keys
		if ch == '{' || ch == ',' {
			fixed = append(fixed, ch)
			i++

			// Skip whitespace
			for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t') {
				fixed = append(fixed, src[i])
				i++
			}

			// Check if we have an unquoted key (starts with letter, not with quote)
			if i < len(src) && src[i] != '"' && isLetter(src[i]) {
				keyStart := i
				// Find the end of the key name
				for i < len(src) && (isLetter(src[i]) || src[i] == '_' || src[i] == ' ') {
					i++
				}
				keyEnd := i

				// A closing quote followed by a colon means the opening quote is missing
				if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
					fixed = append(fixed, '"')
					for j := keyStart; j < keyEnd; j++ {
						if src[j] != ' ' || (j > keyStart && j < keyEnd-1) {
							fixed = append(fixed, src[j])
						}
					}
					// The closing quote is already at src[i]
					continue
				}

				// Not an unquoted key, just copy what we skipped
				for j := keyStart; j < i; j++ {
					fixed = append(fixed, src[j])
				}
			}
		} else {
			fixed = append(fixed, ch)
			i++
		}
	}

	return string(fixed)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
