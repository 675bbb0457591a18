package llmjson

import "testing"

type sample struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

func TestExtractFencedJSON(t *testing.T) {
	text := "Here is the result:\n```json\n{\"subject\": \"hello\", \"score\": 7}\n```\nDone."
	payload, ok := Extract(text)
	if !ok {
		t.Fatal("expected payload")
	}
	if payload != `{"subject": "hello", "score": 7}` {
		t.Errorf("unexpected payload %q", payload)
	}
}

func TestExtractPlainFence(t *testing.T) {
	text := "```\n[1, 2, 3]\n```"
	payload, ok := Extract(text)
	if !ok || payload != "[1, 2, 3]" {
		t.Errorf("got %q, %v", payload, ok)
	}
}

func TestExtractBalancedScan(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"object in prose", `The answer is {"a": 1} as discussed`, `{"a": 1}`},
		{"nested object", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`},
		{"brace inside string", `{"a": "closing } brace"}`, `{"a": "closing } brace"}`},
		{"escaped quote", `{"a": "she said \"}\""}`, `{"a": "she said \"}\""}`},
		{"array", `scores: [10, 20]`, `[10, 20]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Extract(tc.in)
			if !ok {
				t.Fatal("expected payload")
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractNone(t *testing.T) {
	if _, ok := Extract("no json here"); ok {
		t.Error("expected no payload")
	}
	if _, ok := Extract("unterminated { object"); ok {
		t.Error("expected no payload for unbalanced braces")
	}
}

func TestDecodeOrFallback(t *testing.T) {
	fallback := sample{Subject: "follow-up", Score: 5}

	got, ok := DecodeOr("```json\n{\"subject\": \"custom\", \"score\": 9}\n```", fallback)
	if !ok || got.Subject != "custom" || got.Score != 9 {
		t.Errorf("expected decoded value, got %+v (ok=%v)", got, ok)
	}

	got, ok = DecodeOr("the model rambled with no JSON at all", fallback)
	if ok {
		t.Error("expected fallback")
	}
	if got != fallback {
		t.Errorf("fallback not returned: %+v", got)
	}

	// Malformed JSON must also yield the fallback, never a partial value.
	got, ok = DecodeOr(`{"subject": "x", "score": "not a number"}`, fallback)
	if ok || got != fallback {
		t.Errorf("expected fallback on type mismatch, got %+v (ok=%v)", got, ok)
	}
}
