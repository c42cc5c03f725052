package icm

import "fmt"

// PayoutStructure describes how the prize pool is distributed, ordered from
// first place. Places are either percentages of TotalPrizePool or absolute
// amounts whose sum defines the pool.
type PayoutStructure struct {
	Places         []float64 `json:"places"`
	IsPercentage   bool      `json:"isPercentage"`
	TotalPrizePool float64   `json:"totalPrizePool,omitempty"`
}

// Resolve normalises the structure into absolute amounts for activeCount
// players, padding with zero-value places and truncating to exactly
// activeCount. It also returns the total prize pool.
func (ps PayoutStructure) Resolve(activeCount int) ([]float64, float64, error) {
	if activeCount <= 0 {
		return nil, 0, &DomainError{Msg: "no active players"}
	}
	for i, place := range ps.Places {
		if place < 0 {
			return nil, 0, &ConfigError{Msg: fmt.Sprintf("negative payout at place %d", i+1)}
		}
		if ps.IsPercentage && place > 100 {
			return nil, 0, &ConfigError{Msg: fmt.Sprintf("payout percentage above 100 at place %d", i+1)}
		}
	}

	amounts := make([]float64, 0, max(len(ps.Places), activeCount))
	var pool float64
	if ps.IsPercentage {
		if ps.TotalPrizePool <= 0 {
			return nil, 0, &ConfigError{Msg: "prize pool required for percentage payouts"}
		}
		pool = ps.TotalPrizePool
		for _, pct := range ps.Places {
			amounts = append(amounts, pct/100*pool)
		}
	} else {
		for _, amt := range ps.Places {
			amounts = append(amounts, amt)
			pool += amt
		}
	}

	for len(amounts) < activeCount {
		amounts = append(amounts, 0)
	}
	return amounts[:activeCount], pool, nil
}
