package analysis

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/paulhankin/poker"
	"golang.org/x/sync/errgroup"

	"github.com/aokiz-ek/gto-trainer/internal/randutil"
)

const (
	// parallelThreshold is the trial count below which worker fan-out is
	// not worth the overhead.
	parallelThreshold = 2000

	// equityPartitions is fixed rather than CPU-derived so a seeded
	// estimate reproduces exactly on any machine.
	equityPartitions = 8

	// sampleAttempts bounds the rejection sampling of a villain combo
	// against card removal and class weights.
	sampleAttempts = 200
)

type equityShare struct {
	won     float64
	samples int
}

// AllInEquity estimates hero's showdown equity against a calling range by
// Monte Carlo runout: sample a hero combo from the class, a villain combo
// from the range that shares no card with it, and a five-card board, then
// score the seven-card showdown. Ties count half. The estimate is
// deterministic for a given seed and trial count.
func AllInEquity(ctx context.Context, hero HandClass, villains *Range, trials int, seed int64) (float64, error) {
	if trials <= 0 {
		return 0, fmt.Errorf("analysis: trials must be positive, got %d", trials)
	}
	if villains == nil || villains.Size() == 0 {
		return 0, fmt.Errorf("analysis: villain range is empty")
	}

	heroCombos := hero.Combinations()
	villainCombos := expandRange(villains)

	if trials < parallelThreshold {
		share, err := runEquityTrials(ctx, heroCombos, villainCombos, trials, randutil.New(seed))
		if err != nil {
			return 0, err
		}
		return share.equity()
	}

	// Fixed partitioning keeps the result independent of scheduling: each
	// partition owns a derived seed and a fixed share of the trials.
	shares := make([]equityShare, equityPartitions)
	g, ctx := errgroup.WithContext(ctx)
	for part := 0; part < equityPartitions; part++ {
		partTrials := trials / equityPartitions
		if part < trials%equityPartitions {
			partTrials++
		}
		g.Go(func() error {
			rng := randutil.New(seed + int64(part) + 1)
			share, err := runEquityTrials(ctx, heroCombos, villainCombos, partTrials, rng)
			if err != nil {
				return err
			}
			shares[part] = share
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total equityShare
	for _, share := range shares {
		total.won += share.won
		total.samples += share.samples
	}
	return total.equity()
}

func (s equityShare) equity() (float64, error) {
	if s.samples == 0 {
		return 0, fmt.Errorf("analysis: no valid showdown samples")
	}
	return s.won / float64(s.samples), nil
}

type weightedCombo struct {
	cards  [2]poker.Card
	weight float64
}

func expandRange(r *Range) []weightedCombo {
	var combos []weightedCombo
	for _, class := range r.Classes() {
		weight := r.Weight(class)
		for _, cards := range class.Combinations() {
			combos = append(combos, weightedCombo{cards: cards, weight: weight})
		}
	}
	return combos
}

func runEquityTrials(ctx context.Context, heroCombos [][2]poker.Card, villainCombos []weightedCombo, trials int, rng *rand.Rand) (equityShare, error) {
	deck := fullDeck()
	scratch := make([]poker.Card, 0, len(deck))
	var share equityShare
	var heroHand, villainHand [7]poker.Card

	for i := 0; i < trials; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return equityShare{}, err
			}
		}

		heroCards := heroCombos[rng.IntN(len(heroCombos))]
		villainCards, ok := sampleVillain(villainCombos, heroCards, rng)
		if !ok {
			continue
		}

		// Deal the board from the 48 remaining cards.
		scratch = scratch[:0]
		for _, card := range deck {
			if card == heroCards[0] || card == heroCards[1] ||
				card == villainCards[0] || card == villainCards[1] {
				continue
			}
			scratch = append(scratch, card)
		}
		for k := 0; k < 5; k++ {
			j := k + rng.IntN(len(scratch)-k)
			scratch[k], scratch[j] = scratch[j], scratch[k]
		}

		heroHand[0], heroHand[1] = heroCards[0], heroCards[1]
		villainHand[0], villainHand[1] = villainCards[0], villainCards[1]
		copy(heroHand[2:], scratch[:5])
		copy(villainHand[2:], scratch[:5])

		heroScore := poker.Eval7(&heroHand)
		villainScore := poker.Eval7(&villainHand)
		switch {
		case heroScore > villainScore:
			share.won++
		case heroScore == villainScore:
			share.won += 0.5
		}
		share.samples++
	}
	return share, nil
}

// sampleVillain draws a combo from the range, rejecting card collisions
// with hero and applying class weights by acceptance sampling.
func sampleVillain(combos []weightedCombo, hero [2]poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	for attempt := 0; attempt < sampleAttempts; attempt++ {
		candidate := combos[rng.IntN(len(combos))]
		if candidate.weight < 1 && rng.Float64() >= candidate.weight {
			continue
		}
		if candidate.cards[0] == hero[0] || candidate.cards[0] == hero[1] ||
			candidate.cards[1] == hero[0] || candidate.cards[1] == hero[1] {
			continue
		}
		return candidate.cards, true
	}
	return [2]poker.Card{}, false
}
