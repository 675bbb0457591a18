package domain

import (
	"math"
	"testing"
)

func TestAggregateIntent(t *testing.T) {
	sig := func(conf float64) IntentSignal {
		return IntentSignal{Category: SignalHiring, Detail: "hiring facilities manager", Confidence: conf}
	}

	tests := []struct {
		name    string
		signals []IntentSignal
		want    float64
	}{
		{"no signals baseline", nil, 20},
		{"empty slice baseline", []IntentSignal{}, 20},
		{"one high confidence", []IntentSignal{sig(100)}, 75},
		{"two medium", []IntentSignal{sig(90), sig(90)}, 73},
		{"three equal", []IntentSignal{sig(80), sig(80), sig(80)}, 71},
		{"volume bonus caps at 25", []IntentSignal{sig(100), sig(100), sig(100), sig(100), sig(100), sig(100)}, 95},
		{"confidence clamped", []IntentSignal{sig(150)}, 75},
		{"negative confidence clamped", []IntentSignal{sig(-10)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateIntent(tt.signals)
			if math.Abs(got-tt.want) > 0.05 {
				t.Errorf("AggregateIntent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateIntentNeverExceeds100(t *testing.T) {
	signals := make([]IntentSignal, 50)
	for i := range signals {
		signals[i] = IntentSignal{Category: SignalOther, Confidence: 100}
	}
	if got := AggregateIntent(signals); got > 100 {
		t.Errorf("AggregateIntent() = %v, want <= 100", got)
	}
}
