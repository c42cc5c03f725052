package icm

import (
	"errors"
	"math"
	"testing"
)

func TestResolvePayouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		structure   PayoutStructure
		activeCount int
		wantAmounts []float64
		wantPool    float64
	}{
		{
			name:        "percentage payouts",
			structure:   PayoutStructure{Places: []float64{50, 30, 20}, IsPercentage: true, TotalPrizePool: 1000},
			activeCount: 3,
			wantAmounts: []float64{500, 300, 200},
			wantPool:    1000,
		},
		{
			name:        "absolute payouts derive the pool",
			structure:   PayoutStructure{Places: []float64{600, 250, 150}},
			activeCount: 3,
			wantAmounts: []float64{600, 250, 150},
			wantPool:    1000,
		},
		{
			name:        "padded with zero places",
			structure:   PayoutStructure{Places: []float64{70, 30}, IsPercentage: true, TotalPrizePool: 500},
			activeCount: 5,
			wantAmounts: []float64{350, 150, 0, 0, 0},
			wantPool:    500,
		},
		{
			name:        "truncated to the player count",
			structure:   PayoutStructure{Places: []float64{500, 300, 200}},
			activeCount: 2,
			wantAmounts: []float64{500, 300},
			wantPool:    1000,
		},
		{
			name:        "winner take all",
			structure:   PayoutStructure{Places: []float64{100}, IsPercentage: true, TotalPrizePool: 2000},
			activeCount: 4,
			wantAmounts: []float64{2000, 0, 0, 0},
			wantPool:    2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			amounts, pool, err := tt.structure.Resolve(tt.activeCount)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if pool != tt.wantPool {
				t.Errorf("pool = %v, want %v", pool, tt.wantPool)
			}
			if len(amounts) != len(tt.wantAmounts) {
				t.Fatalf("got %d amounts, want %d", len(amounts), len(tt.wantAmounts))
			}
			for i, amt := range amounts {
				if math.Abs(amt-tt.wantAmounts[i]) > 1e-9 {
					t.Errorf("amount[%d] = %v, want %v", i, amt, tt.wantAmounts[i])
				}
			}
		})
	}
}

func TestResolvePayoutsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		structure   PayoutStructure
		activeCount int
		wantConfig  bool
		wantDomain  bool
	}{
		{
			name:        "percentage without a pool",
			structure:   PayoutStructure{Places: []float64{50, 30, 20}, IsPercentage: true},
			activeCount: 3,
			wantConfig:  true,
		},
		{
			name:        "percentage with a non-positive pool",
			structure:   PayoutStructure{Places: []float64{100}, IsPercentage: true, TotalPrizePool: -5},
			activeCount: 1,
			wantConfig:  true,
		},
		{
			name:        "negative place value",
			structure:   PayoutStructure{Places: []float64{500, -100}},
			activeCount: 2,
			wantConfig:  true,
		},
		{
			name:        "percentage above 100",
			structure:   PayoutStructure{Places: []float64{120}, IsPercentage: true, TotalPrizePool: 100},
			activeCount: 1,
			wantConfig:  true,
		},
		{
			name:        "zero active players",
			structure:   PayoutStructure{Places: []float64{100}},
			activeCount: 0,
			wantDomain:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := tt.structure.Resolve(tt.activeCount)
			if err == nil {
				t.Fatal("expected an error")
			}
			var configErr *ConfigError
			var domainErr *DomainError
			if tt.wantConfig && !errors.As(err, &configErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
			if tt.wantDomain && !errors.As(err, &domainErr) {
				t.Errorf("expected DomainError, got %T: %v", err, err)
			}
		})
	}
}
