package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// totalCombos is the number of distinct two-card starting hands.
const totalCombos = 1326

// Range is a weighted set of preflop hand classes. Weights run 0 to 1 and
// scale a class's combination count when measuring range density.
type Range struct {
	weights map[HandClass]float64
}

// NewRange creates an empty range.
func NewRange() *Range {
	return &Range{weights: make(map[HandClass]float64)}
}

// ParseRange builds a range from standard notation, for example
// "22+, A2s+, KTo-K8o, QJs".
func ParseRange(notation string) (*Range, error) {
	r := NewRange()
	for _, part := range strings.Split(notation, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if err := r.addPart(part); err != nil {
			return nil, fmt.Errorf("invalid range part %q: %w", part, err)
		}
	}
	return r, nil
}

// MustParseRange is ParseRange for static table data; it panics on bad
// notation.
func MustParseRange(notation string) *Range {
	r, err := ParseRange(notation)
	if err != nil {
		panic(err)
	}
	return r
}

// Add puts a class in the range at the given weight, clamped to [0,1].
func (r *Range) Add(class HandClass, weight float64) {
	if weight <= 0 {
		delete(r.weights, class)
		return
	}
	if weight > 1 {
		weight = 1
	}
	r.weights[class] = weight
}

func (r *Range) addPart(part string) error {
	if strings.HasSuffix(part, "+") {
		return r.addPlus(strings.TrimSuffix(part, "+"))
	}
	if strings.Contains(part, "-") {
		return r.addDash(part)
	}
	class, err := ParseHandClass(part)
	if err != nil {
		return err
	}
	r.Add(class, 1)
	return nil
}

// addPlus handles notations like "TT+" (pairs tens and up) or "ATs+"
// (ace-ten suited up to ace-king suited). A bare two-rank base such as
// "AT+" covers both suited and offsuit.
func (r *Range) addPlus(base string) error {
	if len(base) < 2 || len(base) > 3 {
		return fmt.Errorf("invalid base notation %q", base)
	}
	rank1 := parseRank(base[0])
	rank2 := parseRank(base[1])
	if rank1 == 0 || rank2 == 0 {
		return fmt.Errorf("invalid rank in %q", base)
	}

	if rank1 == rank2 {
		if len(base) == 3 {
			return fmt.Errorf("pocket pairs cannot take a modifier: %q", base)
		}
		for rank := rank1; rank <= 14; rank++ {
			r.Add(HandClass{High: rank, Low: rank}, 1)
		}
		return nil
	}
	if rank2 > rank1 {
		rank1, rank2 = rank2, rank1
	}

	suited, offsuit, err := modifierFlags(base)
	if err != nil {
		return err
	}
	for rank := rank2; rank < rank1; rank++ {
		if suited {
			r.Add(HandClass{High: rank1, Low: rank, Suited: true}, 1)
		}
		if offsuit {
			r.Add(HandClass{High: rank1, Low: rank}, 1)
		}
	}
	return nil
}

// addDash handles notations like "22-66" or "A5s-A2s".
func (r *Range) addDash(notation string) error {
	parts := strings.Split(notation, "-")
	if len(parts) != 2 {
		return fmt.Errorf("invalid dash range %q", notation)
	}
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if len(start) < 2 || len(end) < 2 {
		return fmt.Errorf("invalid notation in range %q", notation)
	}

	startHigh, startLow := parseRank(start[0]), parseRank(start[1])
	endHigh, endLow := parseRank(end[0]), parseRank(end[1])
	if startHigh == 0 || startLow == 0 || endHigh == 0 || endLow == 0 {
		return fmt.Errorf("invalid ranks in range %q", notation)
	}

	// Pocket pair spans such as "22-66".
	if startHigh == startLow && endHigh == endLow {
		lower, upper := startHigh, endHigh
		if lower > upper {
			lower, upper = upper, lower
		}
		for rank := lower; rank <= upper; rank++ {
			r.Add(HandClass{High: rank, Low: rank}, 1)
		}
		return nil
	}

	// Same-high spans such as "A5s-A2s" or "KTo-K8o".
	if startHigh == endHigh {
		suited, offsuit, err := modifierFlags(start)
		if err != nil {
			return err
		}
		lower, upper := startLow, endLow
		if lower > upper {
			lower, upper = upper, lower
		}
		for rank := lower; rank <= upper; rank++ {
			if suited {
				r.Add(HandClass{High: startHigh, Low: rank, Suited: true}, 1)
			}
			if offsuit {
				r.Add(HandClass{High: startHigh, Low: rank}, 1)
			}
		}
		return nil
	}

	return fmt.Errorf("unsupported range format %q", notation)
}

func modifierFlags(notation string) (suited, offsuit bool, err error) {
	if len(notation) == 2 {
		return true, true, nil
	}
	switch notation[2] {
	case 's':
		return true, false, nil
	case 'o':
		return false, true, nil
	default:
		return false, false, fmt.Errorf("invalid modifier in %q", notation)
	}
}

// Contains reports whether the class carries any weight in the range.
func (r *Range) Contains(class HandClass) bool {
	return r.weights[class] > 0
}

// Weight returns the class's weight, 0 when absent.
func (r *Range) Weight(class HandClass) float64 {
	return r.weights[class]
}

// Size returns the number of distinct classes in the range.
func (r *Range) Size() int {
	return len(r.weights)
}

// Classes returns the range's classes sorted from the highest-ranked down,
// suited before offsuit.
func (r *Range) Classes() []HandClass {
	classes := make([]HandClass, 0, len(r.weights))
	for class := range r.weights {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		a, b := classes[i], classes[j]
		if a.High != b.High {
			return a.High > b.High
		}
		if a.Low != b.Low {
			return a.Low > b.Low
		}
		return a.Suited && !b.Suited
	})
	return classes
}

// Combos returns the weight-adjusted number of concrete combinations the
// range covers.
func (r *Range) Combos() float64 {
	var combos float64
	for class, weight := range r.weights {
		combos += weight * float64(class.Combos())
	}
	return combos
}

// PercentOfAll returns the fraction of all 1326 starting combinations the
// range covers, between 0 and 1.
func (r *Range) PercentOfAll() float64 {
	return r.Combos() / totalCombos
}

// Notation renders the range back as a comma-separated class list. Spans
// are not re-compressed; each class is listed individually.
func (r *Range) Notation() string {
	classes := r.Classes()
	parts := make([]string, len(classes))
	for i, class := range classes {
		parts[i] = class.String()
	}
	return strings.Join(parts, ",")
}
