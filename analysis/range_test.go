package analysis

import (
	"math"
	"testing"
)

func TestParseRangeNotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		notation   string
		wantSize   int
		wantCombos float64
	}{
		{"all pairs", "22+", 13, 13 * 6},
		{"pair span", "22-66", 5, 5 * 6},
		{"suited aces", "A2s+", 12, 12 * 4},
		{"offsuit plus", "ATo+", 4, 4 * 12},
		{"both modifiers", "AT+", 8, 4*4 + 4*12},
		{"suited dash", "A5s-A2s", 4, 4 * 4},
		{"offsuit dash", "KTo-K8o", 3, 3 * 12},
		{"single class", "QJs", 1, 4},
		{"mixed", "22+, A2s+", 25, 13*6 + 12*4},
		{"duplicates collapse", "AA, AA, KK+", 2, 2 * 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := ParseRange(tt.notation)
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.notation, err)
			}
			if r.Size() != tt.wantSize {
				t.Errorf("Size() = %d, want %d", r.Size(), tt.wantSize)
			}
			if math.Abs(r.Combos()-tt.wantCombos) > 1e-9 {
				t.Errorf("Combos() = %v, want %v", r.Combos(), tt.wantCombos)
			}
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	t.Parallel()

	for _, notation := range []string{"XX+", "AAs+", "A5s-K2s", "A-2", "AKx", "22--66"} {
		if _, err := ParseRange(notation); err == nil {
			t.Errorf("ParseRange(%q) succeeded, want error", notation)
		}
	}
}

func TestRangeWeights(t *testing.T) {
	t.Parallel()

	r := NewRange()
	aa := HandClass{High: 14, Low: 14}
	r.Add(aa, 0.5)
	if got := r.Weight(aa); got != 0.5 {
		t.Errorf("Weight(AA) = %v, want 0.5", got)
	}
	if got := r.Combos(); got != 3 {
		t.Errorf("Combos() = %v, want 3 for half-weighted AA", got)
	}

	// Weights clamp to 1 and non-positive weights remove the class.
	r.Add(aa, 2)
	if got := r.Weight(aa); got != 1 {
		t.Errorf("Weight(AA) after clamp = %v, want 1", got)
	}
	r.Add(aa, 0)
	if r.Contains(aa) {
		t.Error("Contains(AA) = true after removal")
	}
}

func TestRangePercentOfAll(t *testing.T) {
	t.Parallel()

	r := MustParseRange("22+, A2s+")
	want := float64(13*6+12*4) / 1326
	if got := r.PercentOfAll(); math.Abs(got-want) > 1e-12 {
		t.Errorf("PercentOfAll() = %v, want %v", got, want)
	}
}

func TestRangeClassesOrdering(t *testing.T) {
	t.Parallel()

	r := MustParseRange("AKo, AKs, 22, QQ")
	classes := r.Classes()
	// Pairs sort by their own rank, so QQ lands below the ace-high classes.
	want := []string{"AKs", "AKo", "QQ", "22"}
	if len(classes) != len(want) {
		t.Fatalf("got %d classes, want %d", len(classes), len(want))
	}
	for i, class := range classes {
		if class.String() != want[i] {
			t.Errorf("Classes()[%d] = %s, want %s", i, class, want[i])
		}
	}
}

func TestRangeNotationRoundTrip(t *testing.T) {
	t.Parallel()

	r := MustParseRange("TT+, AQs+, AKo")
	reparsed, err := ParseRange(r.Notation())
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if reparsed.Size() != r.Size() || reparsed.Combos() != r.Combos() {
		t.Errorf("round trip changed the range: %s vs %s", r.Notation(), reparsed.Notation())
	}
}

func TestTables(t *testing.T) {
	t.Parallel()

	ts := Tables()
	if ts != Tables() {
		t.Error("Tables() is not a shared singleton")
	}

	for seat, r := range ts.Open {
		if r.Size() == 0 {
			t.Errorf("open range for %s is empty", seat)
		}
	}
	for seat, r := range ts.ThreeBet {
		if r.Size() == 0 {
			t.Errorf("3-bet range for %s is empty", seat)
		}
	}
	if ts.Squeeze.Size() == 0 {
		t.Error("squeeze range is empty")
	}

	// Shallower depths should push wider.
	if ts.PushRange(5).Combos() <= ts.PushRange(12).Combos() {
		t.Error("5bb push range should be wider than 12bb")
	}
	// Depths between buckets round up; depths past the deepest bucket reuse it.
	if ts.PushRange(6) != ts.Push[8] {
		t.Error("6bb should use the 8bb bucket")
	}
	if ts.PushRange(40) != ts.Push[12] {
		t.Error("40bb should fall back to the deepest bucket")
	}
	if ts.CallRange(3) != ts.Call[5] {
		t.Error("3bb should use the 5bb calling bucket")
	}
}
