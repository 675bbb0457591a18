package domain

import (
	"math"
	"strings"
)

// genericPhrases are mass-campaign tells that cost a quality point.
var genericPhrases = []string{
	"i hope this email finds you well",
	"i wanted to reach out",
	"just checking in",
	"circling back",
	"touching base",
}

// ScoreQuality rates a generated email 0-10. The heuristic starts at 5
// and rewards personalization depth, healthy length, concrete figures
// and natural use of the company name; generic opener phrases cost a
// point. Capped at 10.
func ScoreQuality(email Email, companyName string) float64 {
	score := 5.0

	score += math.Min(float64(len(email.PersonalizationUsed))*0.5, 2.0)

	words := len(strings.Fields(email.Body))
	switch {
	case words >= 80 && words <= 150:
		score += 1.0
	case words >= 60 && words <= 180:
		score += 0.5
	}

	bodyLower := strings.ToLower(email.Body)
	for _, phrase := range genericPhrases {
		if strings.Contains(bodyLower, phrase) {
			score -= 1.0
			break
		}
	}

	if strings.ContainsAny(email.Body, "$%") {
		score += 0.5
	}

	if companyName != "" && strings.Contains(bodyLower, strings.ToLower(companyName)) {
		score += 0.5
	}

	return math.Round(math.Min(score, 10)*10) / 10
}
