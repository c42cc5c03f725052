package leak

import (
	"math"
	"testing"

	"github.com/aokiz-ek/gto-trainer/icm"
)

func decisionWith(evPush, evFold float64) *icm.PushFoldDecision {
	return &icm.PushFoldDecision{
		EVPush:     evPush,
		EVFold:     evFold,
		ShouldPush: evPush > evFold,
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		decision     *icm.PushFoldDecision
		chose        Action
		prizePool    float64
		wantCorrect  bool
		wantLoss     float64
		wantSeverity Severity
	}{
		{
			name:         "correct push",
			decision:     decisionWith(310, 300),
			chose:        ActionPush,
			prizePool:    1000,
			wantCorrect:  true,
			wantSeverity: SeverityNone,
		},
		{
			name:         "correct fold",
			decision:     decisionWith(290, 300),
			chose:        ActionFold,
			prizePool:    1000,
			wantCorrect:  true,
			wantSeverity: SeverityNone,
		},
		{
			name:         "minor miss",
			decision:     decisionWith(303, 300),
			chose:        ActionFold,
			prizePool:    1000,
			wantLoss:     3,
			wantSeverity: SeverityMinor,
		},
		{
			name:         "moderate miss",
			decision:     decisionWith(310, 300),
			chose:        ActionFold,
			prizePool:    1000,
			wantLoss:     10,
			wantSeverity: SeverityModerate,
		},
		{
			name:         "major miss",
			decision:     decisionWith(320, 300),
			chose:        ActionFold,
			prizePool:    1000,
			wantLoss:     20,
			wantSeverity: SeverityMajor,
		},
		{
			name:         "critical miss",
			decision:     decisionWith(300, 350),
			chose:        ActionPush,
			prizePool:    1000,
			wantLoss:     50,
			wantSeverity: SeverityCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Assess(tt.decision, tt.chose, tt.prizePool)
			if err != nil {
				t.Fatalf("Assess error = %v", err)
			}
			if got.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", got.Correct, tt.wantCorrect)
			}
			if math.Abs(got.EVLoss-tt.wantLoss) > 1e-9 {
				t.Errorf("EVLoss = %v, want %v", got.EVLoss, tt.wantLoss)
			}
			wantPct := tt.wantLoss / tt.prizePool
			if math.Abs(got.LossPct-wantPct) > 1e-12 {
				t.Errorf("LossPct = %v, want %v", got.LossPct, wantPct)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("Severity = %v, want %v", got.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestAssessBoundaries(t *testing.T) {
	t.Parallel()

	// Exactly at a threshold lands in the higher bucket.
	got, err := Assess(decisionWith(305, 300), ActionFold, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got.Severity != SeverityModerate {
		t.Errorf("0.5%% loss graded %v, want moderate", got.Severity)
	}

	got, err = Assess(decisionWith(330, 300), ActionFold, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got.Severity != SeverityCritical {
		t.Errorf("3%% loss graded %v, want critical", got.Severity)
	}
}

func TestAssessErrors(t *testing.T) {
	t.Parallel()

	if _, err := Assess(nil, ActionPush, 1000); err == nil {
		t.Error("nil decision should error")
	}
	if _, err := Assess(decisionWith(1, 0), ActionPush, 0); err == nil {
		t.Error("zero prize pool should error")
	}
}
