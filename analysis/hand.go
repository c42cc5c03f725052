// Package analysis provides the hand-model utilities surrounding the ICM
// engine: the 169 preflop hand classes, range notation parsing, static
// strategy tables, Monte Carlo all-in equity, and push-chart generation.
// It consumes only the engine's exported data types.
package analysis

import (
	"fmt"
	"sync"

	"github.com/paulhankin/poker"
)

// HandClass is one of the 169 preflop starting-hand categories: pocket
// pairs, suited combinations, and offsuit combinations. High and Low are
// ranks from 2 to 14 with aces high.
type HandClass struct {
	High   uint8
	Low    uint8
	Suited bool
}

const rankChars = "23456789TJQKA"

func rankChar(rank uint8) byte {
	return rankChars[rank-2]
}

// parseRank converts a rank character to its ace-high numeric value,
// returning 0 for anything unrecognised.
func parseRank(c byte) uint8 {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return c - '0'
	case 'T':
		return 10
	case 'J':
		return 11
	case 'Q':
		return 12
	case 'K':
		return 13
	case 'A':
		return 14
	default:
		return 0
	}
}

// ParseHandClass parses notation like "AA", "AKs" or "T9o". Rank order is
// normalised, so "9Ts" and "T9s" are the same class.
func ParseHandClass(s string) (HandClass, error) {
	if len(s) < 2 || len(s) > 3 {
		return HandClass{}, fmt.Errorf("invalid hand class %q", s)
	}
	high := parseRank(s[0])
	low := parseRank(s[1])
	if high == 0 || low == 0 {
		return HandClass{}, fmt.Errorf("invalid rank in %q", s)
	}
	if low > high {
		high, low = low, high
	}
	if high == low {
		if len(s) == 3 {
			return HandClass{}, fmt.Errorf("pocket pair %q cannot take a suited or offsuit modifier", s)
		}
		return HandClass{High: high, Low: low}, nil
	}
	if len(s) != 3 {
		return HandClass{}, fmt.Errorf("%q needs a suited or offsuit modifier", s)
	}
	switch s[2] {
	case 's':
		return HandClass{High: high, Low: low, Suited: true}, nil
	case 'o':
		return HandClass{High: high, Low: low}, nil
	default:
		return HandClass{}, fmt.Errorf("invalid modifier in %q", s)
	}
}

func (h HandClass) String() string {
	if h.High == h.Low {
		return string([]byte{rankChar(h.High), rankChar(h.Low)})
	}
	modifier := byte('o')
	if h.Suited {
		modifier = 's'
	}
	return string([]byte{rankChar(h.High), rankChar(h.Low), modifier})
}

// Pair reports whether the class is a pocket pair.
func (h HandClass) Pair() bool {
	return h.High == h.Low
}

// Combos returns how many concrete two-card combinations the class covers:
// 6 for pairs, 4 suited, 12 offsuit.
func (h HandClass) Combos() int {
	switch {
	case h.Pair():
		return 6
	case h.Suited:
		return 4
	default:
		return 12
	}
}

// AllHandClasses returns the 169 classes ordered from AA down, suited
// before offsuit within a rank pairing.
func AllHandClasses() []HandClass {
	classes := make([]HandClass, 0, 169)
	for high := uint8(14); high >= 2; high-- {
		for low := high; low >= 2; low-- {
			if high == low {
				classes = append(classes, HandClass{High: high, Low: low})
				continue
			}
			classes = append(classes, HandClass{High: high, Low: low, Suited: true})
			classes = append(classes, HandClass{High: high, Low: low, Suited: false})
		}
	}
	return classes
}

// libRank maps ace-high ranks onto the evaluator's, which numbers aces 1.
func libRank(rank uint8) poker.Rank {
	if rank == 14 {
		return 1
	}
	return poker.Rank(rank)
}

func mustCard(rank uint8, suit int) poker.Card {
	card, err := poker.MakeCard(poker.Suit(suit), libRank(rank))
	if err != nil {
		panic(err)
	}
	return card
}

// Combinations expands the class into its concrete card pairs across suits.
func (h HandClass) Combinations() [][2]poker.Card {
	combos := make([][2]poker.Card, 0, h.Combos())
	if h.Pair() {
		for s1 := 0; s1 < 4; s1++ {
			for s2 := s1 + 1; s2 < 4; s2++ {
				combos = append(combos, [2]poker.Card{mustCard(h.High, s1), mustCard(h.Low, s2)})
			}
		}
		return combos
	}
	if h.Suited {
		for s := 0; s < 4; s++ {
			combos = append(combos, [2]poker.Card{mustCard(h.High, s), mustCard(h.Low, s)})
		}
		return combos
	}
	for s1 := 0; s1 < 4; s1++ {
		for s2 := 0; s2 < 4; s2++ {
			if s1 == s2 {
				continue
			}
			combos = append(combos, [2]poker.Card{mustCard(h.High, s1), mustCard(h.Low, s2)})
		}
	}
	return combos
}

var (
	classLookupOnce sync.Once
	classLookup     map[[2]poker.Card]HandClass
)

// HandClassOf maps two concrete cards back to their class. The lookup is
// built once from the class expansions, so card order does not matter.
func HandClassOf(c1, c2 poker.Card) (HandClass, bool) {
	classLookupOnce.Do(func() {
		classLookup = make(map[[2]poker.Card]HandClass, 2652)
		for _, class := range AllHandClasses() {
			for _, combo := range class.Combinations() {
				classLookup[combo] = class
				classLookup[[2]poker.Card{combo[1], combo[0]}] = class
			}
		}
	})
	class, ok := classLookup[[2]poker.Card{c1, c2}]
	return class, ok
}

// fullDeck returns all 52 cards.
func fullDeck() []poker.Card {
	deck := make([]poker.Card, 0, 52)
	for suit := 0; suit < 4; suit++ {
		for rank := uint8(2); rank <= 14; rank++ {
			deck = append(deck, mustCard(rank, suit))
		}
	}
	return deck
}
