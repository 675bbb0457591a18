// Package domain holds the tier-gated dispatch rules and the email
// types and quality heuristics shared by content generation.
package domain

// Channel is where a generated touch is delivered.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelLinkedIn Channel = "linkedin"
)

// Email is one generated touch in an outreach sequence.
type Email struct {
	TouchNumber         int      `json:"touch_number"`
	Channel             Channel  `json:"channel"`
	Subject             string   `json:"subject"`
	Body                string   `json:"body"`
	PersonalizationUsed []string `json:"personalization_used"`
	KeyPoints           []string `json:"key_points"`
	ExpectedResponse    string   `json:"expected_response"`
	QualityScore        float64  `json:"quality_score"`
}

// LinkedInMessage is a connection request plus its follow-up.
type LinkedInMessage struct {
	ConnectionMessage string `json:"connection_message"`
	FollowUpMessage   string `json:"follow_up_message"`
}
