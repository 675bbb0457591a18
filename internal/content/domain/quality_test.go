package domain

import (
	"strings"
	"testing"
)

func TestScoreQuality(t *testing.T) {
	goodBody := "Acme Casino spends roughly $15,000,000 a year on energy. " +
		strings.Repeat("Based on verified results at comparable properties the filters typically return 8.59% of that. ", 7) +
		"Worth a quick look?"

	tests := []struct {
		name    string
		email   Email
		company string
		want    float64
	}{
		{
			name: "strong personalized email",
			email: Email{
				Body:                goodBody,
				PersonalizationUsed: []string{"company name", "savings figure", "industry", "payback"},
			},
			company: "Acme Casino",
			// 5 + 2 (personalization cap) + 1 (length) + 0.5 ($) + 0.5 (name)
			want: 9,
		},
		{
			name:    "bare fallback email",
			email:   Email{Body: "Follow up soon."},
			company: "Acme Casino",
			want:    5,
		},
		{
			name: "generic opener penalized",
			email: Email{
				Body: "I hope this email finds you well. " + goodBody,
				PersonalizationUsed: []string{"company name"},
			},
			company: "Acme Casino",
			// 5 + 0.5 + 1 + 0.5 + 0.5 - 1
			want: 6.5,
		},
		{
			name: "cap at ten",
			email: Email{
				Body:                goodBody,
				PersonalizationUsed: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			company: "Acme Casino",
			want:    9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreQuality(tt.email, tt.company)
			if got != tt.want {
				t.Errorf("ScoreQuality() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreQualityNeverExceedsTen(t *testing.T) {
	email := Email{
		Body:                "Acme saves $1 and 8% " + strings.Repeat("word ", 100),
		PersonalizationUsed: make([]string, 20),
	}
	if got := ScoreQuality(email, "Acme"); got > 10 {
		t.Errorf("ScoreQuality() = %v, want <= 10", got)
	}
}
