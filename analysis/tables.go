package analysis

import "sync"

// Seat is a table position for the static strategy tables.
type Seat int

const (
	SeatUTG Seat = iota
	SeatMP
	SeatCO
	SeatBTN
	SeatSB
	SeatBB
)

func (s Seat) String() string {
	switch s {
	case SeatUTG:
		return "UTG"
	case SeatMP:
		return "MP"
	case SeatCO:
		return "CO"
	case SeatBTN:
		return "BTN"
	case SeatSB:
		return "SB"
	case SeatBB:
		return "BB"
	default:
		return "?"
	}
}

// TableSet bundles the static range tables. These are hand-tuned heuristic
// buckets shipped as data; nothing here is solver output.
type TableSet struct {
	// Open-raise ranges by seat.
	Open map[Seat]*Range
	// 3-bet ranges versus a single raiser, by the 3-bettor's seat.
	ThreeBet map[Seat]*Range
	// Squeeze range versus a raiser plus at least one caller.
	Squeeze *Range
	// Push ranges keyed by big-blind depth ceiling (push when at or below
	// that many big blinds).
	Push map[int]*Range
	// Calling ranges versus a shove, keyed the same way.
	Call map[int]*Range
}

var (
	tablesOnce sync.Once
	tables     *TableSet
)

// Tables returns the shared static table set. The set is immutable after
// construction; callers must not modify the returned ranges.
func Tables() *TableSet {
	tablesOnce.Do(func() {
		tables = &TableSet{
			Open: map[Seat]*Range{
				SeatUTG: MustParseRange("77+, ATs+, KQs, AJo+, KQo"),
				SeatMP:  MustParseRange("55+, A9s+, KTs+, QTs+, JTs, ATo+, KJo+"),
				SeatCO:  MustParseRange("22+, A2s+, K9s+, Q9s+, J9s+, T9s, 98s, A8o+, KTo+, QTo+, JTo"),
				SeatBTN: MustParseRange("22+, A2s+, K7s+, Q8s+, J8s+, T8s+, 97s+, 87s, 76s, A2o+, K9o+, Q9o+, J9o+, T9o"),
				SeatSB:  MustParseRange("22+, A2s+, K5s+, Q8s+, J8s+, T8s+, 98s, A4o+, K9o+, Q9o+, J9o+"),
			},
			ThreeBet: map[Seat]*Range{
				SeatMP:  MustParseRange("QQ+, AKs, AKo"),
				SeatCO:  MustParseRange("JJ+, AQs+, AKo"),
				SeatBTN: MustParseRange("TT+, AQs+, A5s-A4s, AQo+"),
				SeatSB:  MustParseRange("TT+, AJs+, KQs, AQo+"),
				SeatBB:  MustParseRange("99+, ATs+, A5s-A2s, KQs, AJo+"),
			},
			Squeeze: MustParseRange("TT+, AQs+, AKo"),
			Push: map[int]*Range{
				5:  MustParseRange("22+, A2s+, A2o+, K2s+, K7o+, Q6s+, Q9o+, J7s+, J9o+, T7s+, T9o, 97s+, 87s, 76s"),
				8:  MustParseRange("22+, A2s+, A4o+, K7s+, KTo+, Q8s+, QTo+, J8s+, JTo, T8s+, 98s"),
				12: MustParseRange("22+, A7s+, A5s-A2s, ATo+, KTs+, KJo+, QTs+, JTs"),
			},
			Call: map[int]*Range{
				5:  MustParseRange("22+, A2s+, A7o+, K9s+, KJo+, QTs+"),
				8:  MustParseRange("55+, A8s+, ATo+, KQs"),
				12: MustParseRange("88+, ATs+, AJo+"),
			},
		}
	})
	return tables
}

// PushRange returns the push table bucket for a big-blind depth, picking
// the tightest bucket at or above the depth; depths beyond the deepest
// bucket reuse it.
func (ts *TableSet) PushRange(bigBlinds float64) *Range {
	return ts.depthBucket(ts.Push, bigBlinds)
}

// CallRange returns the calling-range bucket for a big-blind depth.
func (ts *TableSet) CallRange(bigBlinds float64) *Range {
	return ts.depthBucket(ts.Call, bigBlinds)
}

func (ts *TableSet) depthBucket(buckets map[int]*Range, bigBlinds float64) *Range {
	best, deepest := 0, 0
	for depth := range buckets {
		if depth > deepest {
			deepest = depth
		}
		if float64(depth) >= bigBlinds && (best == 0 || depth < best) {
			best = depth
		}
	}
	if best == 0 {
		// Deeper than every bucket: fall back to the deepest.
		best = deepest
	}
	return buckets[best]
}
