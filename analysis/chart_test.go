package analysis

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/aokiz-ek/gto-trainer/icm"
)

func chartConfig() ChartConfig {
	return ChartConfig{
		HeroChips:    5000,
		VillainChips: 12000,
		Others:       []float64{15000, 18000},
		Payouts: icm.PayoutStructure{
			Places:         []float64{50, 30, 20},
			IsPercentage:   true,
			TotalPrizePool: 1000,
		},
		SmallBlind:   500,
		BigBlind:     1000,
		HeroPosition: icm.PositionSmallBlind,
		CallingRange: MustParseRange("55+, A8s+, ATo+, KQs"),
		Trials:       500,
		Seed:         1234,
		Workers:      2,
	}
}

func TestPushChart(t *testing.T) {
	t.Parallel()

	// A sticky caller makes weak pushes clearly losing, so the chart is a
	// proper subset rather than an any-two shove.
	cfg := chartConfig()
	cfg.CallFrequency = 0.6

	chart, err := PushChart(context.Background(), cfg)
	if err != nil {
		t.Fatalf("PushChart error = %v", err)
	}

	if len(chart.Cells) != 169 {
		t.Fatalf("got %d cells, want 169", len(chart.Cells))
	}
	for _, class := range AllHandClasses() {
		cell := chart.Cell(class)
		if cell == nil {
			t.Fatalf("missing cell for %s", class)
		}
		if cell.Class != class {
			t.Errorf("cell for %s holds class %s", class, cell.Class)
		}
		if cell.Equity < 0 || cell.Equity > 1 {
			t.Errorf("%s equity = %v, outside [0,1]", class, cell.Equity)
		}
		if cell.Push != (cell.EVPush > cell.EVFold) {
			t.Errorf("%s verdict disagrees with its EVs", class)
		}
	}

	// At five big blinds in the small blind, aces are always a push and the
	// chart should be neither empty nor hand-agnostic.
	aa := chart.Cell(HandClass{High: 14, Low: 14})
	if !aa.Push {
		t.Error("AA should push at five big blinds")
	}
	if count := chart.PushCount(); count == 0 || count == 169 {
		t.Errorf("PushCount() = %d, want a proper subset of all classes", count)
	}
}

func TestPushChartDeterministic(t *testing.T) {
	t.Parallel()

	first, err := PushChart(context.Background(), chartConfig())
	if err != nil {
		t.Fatal(err)
	}
	second, err := PushChart(context.Background(), chartConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Cells, second.Cells) {
		t.Error("same seed produced different charts")
	}
}

func TestPushChartDefaultCallFrequency(t *testing.T) {
	t.Parallel()

	cfg := chartConfig()
	chart, err := PushChart(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := cfg.CallingRange.PercentOfAll()
	if math.Abs(chart.CallFrequency-want) > 1e-12 {
		t.Errorf("CallFrequency = %v, want range density %v", chart.CallFrequency, want)
	}

	cfg.CallFrequency = 0.25
	chart, err = PushChart(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if chart.CallFrequency != 0.25 {
		t.Errorf("explicit CallFrequency = %v, want 0.25", chart.CallFrequency)
	}
}

func TestPushChartValidation(t *testing.T) {
	t.Parallel()

	cfg := chartConfig()
	cfg.CallingRange = nil
	if _, err := PushChart(context.Background(), cfg); err == nil {
		t.Error("nil calling range should error")
	}

	cfg = chartConfig()
	cfg.Trials = 0
	if _, err := PushChart(context.Background(), cfg); err == nil {
		t.Error("zero trials should error")
	}

	cfg = chartConfig()
	cfg.CallFrequency = 1.5
	if _, err := PushChart(context.Background(), cfg); err == nil {
		t.Error("out-of-range call frequency should error")
	}
}
