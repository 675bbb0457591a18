package storage

import "testing"

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		campaign string
		company  string
		want     string
	}{
		{
			name:     "spaces become underscores",
			campaign: "c1",
			company:  "Grand Casino Resort",
			want:     "collateral/c1/grand_casino_resort.pdf",
		},
		{
			name:     "punctuation dropped",
			campaign: "c1",
			company:  "O'Malley's Casino, Inc.",
			want:     "collateral/c1/omalleys_casino_inc.pdf",
		},
		{
			name:     "campaign id kept verbatim",
			campaign: "3f1a2b3c-0000-0000-0000-000000000000",
			company:  "Acme",
			want:     "collateral/3f1a2b3c-0000-0000-0000-000000000000/acme.pdf",
		},
		{
			name:     "empty company falls back",
			campaign: "c1",
			company:  "!!!",
			want:     "collateral/c1/unnamed.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.campaign, tt.company); got != tt.want {
				t.Errorf("ObjectKey(%q, %q) = %q, want %q", tt.campaign, tt.company, got, tt.want)
			}
		})
	}
}
