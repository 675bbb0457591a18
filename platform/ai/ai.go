// Package ai defines the boundary to large-language-model collaborators.
// Implementations live in subpackages; consumers depend on this interface so
// tests can substitute canned completions.
package ai

import "context"

// TextGenerator produces free text for a prompt. The returned text may embed
// a JSON object or array; see llmjson for the parsing contract.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int64) (string, error)
}
