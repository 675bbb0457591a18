// Package llmjson extracts JSON payloads from loosely structured LLM output.
//
// The contract, which downstream code depends on: look for a fenced ```json
// block first, then any fenced block that opens with a brace or bracket, then
// scan for the first balanced object or array in the raw text. Callers that
// must never fail use DecodeOr, which substitutes a typed fallback value on
// any parse failure.
package llmjson

import (
	"encoding/json"
	"strings"

	"tune_outbound_backend/platform/apperr"
)

// Extract returns the JSON payload embedded in text and whether one was found.
func Extract(text string) (string, bool) {
	if block, ok := fencedBlock(text, "```json"); ok {
		return block, true
	}
	if block, ok := fencedBlock(text, "```"); ok {
		trimmed := strings.TrimSpace(block)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return trimmed, true
		}
	}
	return balancedScan(text)
}

// Decode unmarshals the embedded JSON payload into v.
func Decode(text string, v interface{}) error {
	payload, ok := Extract(text)
	if !ok {
		return apperr.Parse("no JSON payload found in response", nil)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return apperr.Parse("malformed JSON payload in response", err)
	}
	return nil
}

// DecodeOr unmarshals the embedded JSON into a value of type T. On any
// failure it returns the fallback and false; partially valid data never
// leaks to the caller.
func DecodeOr[T any](text string, fallback T) (T, bool) {
	var v T
	if err := Decode(text, &v); err != nil {
		return fallback, false
	}
	return v, true
}

func fencedBlock(text, fence string) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(fence):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// balancedScan finds the first balanced JSON object or array in text,
// tracking string literals and escapes so braces inside strings don't
// terminate the scan early.
func balancedScan(text string) (string, bool) {
	start := -1
	var open, clos byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start, open, clos = i, '{', '}'
			break
		}
		if text[i] == '[' {
			start, open, clos = i, '[', ']'
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case clos:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
