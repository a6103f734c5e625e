package oracle

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestTranslateModelForBedrock(t *testing.T) {
	tests := []struct {
		name  string
		model anthropic.Model
		want  anthropic.Model
	}{
		{
			name:  "known model translates",
			model: anthropic.ModelClaudeSonnet4_20250514,
			want:  "us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			name:  "already bedrock format passes through",
			model: "us.anthropic.claude-sonnet-4-20250514-v1:0",
			want:  "us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			name:  "unknown model passes through",
			model: "custom-model",
			want:  "custom-model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateModelForBedrock(tt.model); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenTracker(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(1000, 500)
	tracker.Add(2000, 1500)

	input, output := tracker.Total()
	if input != 3000 || output != 2000 {
		t.Errorf("Total = (%d, %d), want (3000, 2000)", input, output)
	}
	if tracker.Calls() != 2 {
		t.Errorf("Calls = %d, want 2", tracker.Calls())
	}

	// 3000 input at $3/M plus 2000 output at $15/M.
	want := 3000.0/1_000_000*3.0 + 2000.0/1_000_000*15.0
	if got := tracker.Cost(); got != want {
		t.Errorf("Cost = %v, want %v", got, want)
	}
}
