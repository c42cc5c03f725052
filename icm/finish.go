package icm

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// MaxFieldSize is the largest active-player count the engine accepts.
	// The Malmuth-Harville recursion memoises on subsets of the field, so
	// cost grows roughly as O(n^2 * 2^n); twelve players is the practical
	// ceiling before a calculation stops being interactive. Callers with
	// larger fields must pre-check or split the calculation themselves.
	MaxFieldSize = 12

	// ProbabilityTolerance is the allowed drift when a finish-probability
	// vector is checked against an exact sum of 1.
	ProbabilityTolerance = 1e-9
)

// memoKey identifies one sub-problem of the recursion: the probability that
// the player at a canonical index finishes in a given place among the
// remaining subset of the field. Indices are assigned once per calculation,
// so the key stays stable no matter what characters player IDs contain.
type memoKey struct {
	player    uint8
	place     uint8
	remaining uint16
}

// calculator runs the Malmuth-Harville recursion over one fixed field of
// active players. The memo table lives exactly as long as the calculator;
// independent calculations never share state.
type calculator struct {
	chips []float64
	memo  map[memoKey]float64
}

func newCalculator(active []Player) (*calculator, error) {
	if err := validateField(active); err != nil {
		return nil, err
	}
	chips := make([]float64, len(active))
	for i, p := range active {
		chips[i] = p.Chips
	}
	return &calculator{chips: chips, memo: make(map[memoKey]float64)}, nil
}

// finishVector returns, for the player at index p, the probability of
// finishing in each place from 1st to len(chips)th.
func (c *calculator) finishVector(p int) []float64 {
	full := uint16(1)<<len(c.chips) - 1
	vector := make([]float64, len(c.chips))
	for place := 1; place <= len(c.chips); place++ {
		vector[place-1] = c.placeProb(p, place, full)
	}
	return vector
}

// placeProb computes the Malmuth-Harville recursion. The probability that p
// takes first place is its chip share; the probability that p takes place k
// is the sum over every other player o of P(o first) * P(p takes place k-1
// once o and its chips are removed from the field).
func (c *calculator) placeProb(p, place int, remaining uint16) float64 {
	n := bits.OnesCount16(remaining)
	if place < 1 || place > n {
		return 0
	}

	var total float64
	for i := range c.chips {
		if remaining&(1<<i) != 0 {
			total += c.chips[i]
		}
	}
	if total <= 0 {
		// No chips in play: finishing orders are indistinguishable, except
		// that a lone remaining player trivially takes first.
		if n == 1 && place == 1 {
			return 1
		}
		return 0
	}

	if place == 1 {
		return c.chips[p] / total
	}

	key := memoKey{player: uint8(p), place: uint8(place), remaining: remaining}
	if prob, ok := c.memo[key]; ok {
		return prob
	}

	var prob float64
	for o := range c.chips {
		if o == p || remaining&(1<<o) == 0 {
			continue
		}
		first := c.chips[o] / total
		if first == 0 {
			continue
		}
		prob += first * c.placeProb(p, place-1, remaining&^(1<<o))
	}
	c.memo[key] = prob
	return prob
}

// checkVector verifies a finish-probability vector sums to 1 within
// tolerance, returning a warning when it drifts. A field holding zero total
// chips legitimately sums to 0 and is not flagged.
func checkVector(id string, vector []float64) []Warning {
	var sum float64
	for _, p := range vector {
		sum += p
	}
	if sum == 0 {
		return nil
	}
	if math.Abs(sum-1) > ProbabilityTolerance {
		return []Warning{{
			Code:   WarnProbabilitySum,
			Detail: fmt.Sprintf("player %s probabilities sum to %.12f", id, sum),
		}}
	}
	return nil
}

// FinishProbabilities computes the finish-place distribution for player
// among the given active set using the Malmuth-Harville formula. The
// returned vector has one entry per active player; entry k is the
// probability of finishing in place k+1. The memo table backing the
// recursion is private to this call.
func FinishProbabilities(player Player, active []Player) ([]float64, error) {
	idx := -1
	for i, p := range active {
		if p.ID == player.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &DomainError{Msg: fmt.Sprintf("player %s is not in the active set", player.ID)}
	}
	calc, err := newCalculator(active)
	if err != nil {
		return nil, err
	}
	return calc.finishVector(idx), nil
}
