package icm

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func batchScenarios() []BatchScenario {
	payouts := standardPayouts()
	scenarios := make([]BatchScenario, 0, 20)
	for i := 0; i < 20; i++ {
		scenarios = append(scenarios, BatchScenario{
			ID: fmt.Sprintf("s%d", i),
			Players: []Player{
				{ID: "a", Chips: float64(1000 + i*700)},
				{ID: "b", Chips: float64(5000 - i*100)},
				{ID: "c", Chips: 2500},
				{ID: "d", Chips: float64(100 * (i + 1))},
			},
			Payouts: payouts,
		})
	}
	return scenarios
}

func TestCalculateBatchMatchesSequential(t *testing.T) {
	t.Parallel()

	scenarios := batchScenarios()
	got, err := CalculateBatch(context.Background(), scenarios, 4)
	if err != nil {
		t.Fatalf("CalculateBatch error = %v", err)
	}
	if len(got) != len(scenarios) {
		t.Fatalf("got %d results, want %d", len(got), len(scenarios))
	}

	for i, scenario := range scenarios {
		want, wantErr := Calculate(scenario.Players, scenario.Payouts)
		if got[i].ID != scenario.ID {
			t.Errorf("result %d id = %q, want %q (order must be preserved)", i, got[i].ID, scenario.ID)
		}
		if (got[i].Err == nil) != (wantErr == nil) {
			t.Errorf("scenario %s error mismatch: %v vs %v", scenario.ID, got[i].Err, wantErr)
		}
		if !reflect.DeepEqual(got[i].Result, want) {
			t.Errorf("scenario %s diverged from the sequential result", scenario.ID)
		}
	}
}

func TestCalculateBatchRecordsScenarioErrors(t *testing.T) {
	t.Parallel()

	scenarios := []BatchScenario{
		{ID: "ok", Players: []Player{{ID: "a", Chips: 100}, {ID: "b", Chips: 50}}, Payouts: standardPayouts()},
		{ID: "empty", Players: []Player{{ID: "a", Chips: 0}}, Payouts: standardPayouts()},
	}

	results, err := CalculateBatch(context.Background(), scenarios, 2)
	if err != nil {
		t.Fatalf("CalculateBatch error = %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("scenario ok failed: %v", results[0].Err)
	}
	var domainErr *DomainError
	if !errors.As(results[1].Err, &domainErr) {
		t.Errorf("scenario empty: expected DomainError, got %v", results[1].Err)
	}
}

func TestCalculateBatchCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CalculateBatch(ctx, batchScenarios(), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
