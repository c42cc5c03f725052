package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aokiz-ek/gto-trainer/icm"
)

// seedStride separates per-class seeds so neighbouring cells never share a
// random stream regardless of evaluation order.
const seedStride = 0x9e3779b9

// ChartConfig describes one push-chart sweep: a fixed stack and blind
// configuration evaluated for all 169 hero hand classes.
type ChartConfig struct {
	HeroChips    float64
	VillainChips float64
	Others       []float64
	Payouts      icm.PayoutStructure

	SmallBlind float64
	BigBlind   float64
	Ante       float64

	HeroPosition icm.Position

	// CallingRange is the range villain calls the push with.
	// CallFrequency defaults to the calling range's share of all starting
	// hands when left at zero.
	CallingRange  *Range
	CallFrequency float64

	// Trials per cell for the equity estimate; Seed makes the whole chart
	// reproducible. Workers <= 0 means one per CPU.
	Trials  int
	Seed    int64
	Workers int
}

// ChartCell is the verdict for one hand class.
type ChartCell struct {
	Class  HandClass
	Equity float64
	EVPush float64
	EVFold float64
	Push   bool
}

// Chart is a full 169-class push/fold sweep.
type Chart struct {
	Cells         []ChartCell
	CallFrequency float64

	index map[HandClass]int
}

// Cell returns the cell for a class, or nil when absent.
func (c *Chart) Cell(class HandClass) *ChartCell {
	if i, ok := c.index[class]; ok {
		return &c.Cells[i]
	}
	return nil
}

// PushCount returns how many classes the chart pushes.
func (c *Chart) PushCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell.Push {
			count++
		}
	}
	return count
}

// PushChart evaluates the push/fold decision for every hand class under
// one stack configuration. Each cell estimates hero's all-in equity
// against the calling range, then runs the ICM evaluator; cells are
// independent, so they fan out across workers with per-cell seeds.
func PushChart(ctx context.Context, cfg ChartConfig) (*Chart, error) {
	if cfg.CallingRange == nil || cfg.CallingRange.Size() == 0 {
		return nil, fmt.Errorf("analysis: chart needs a calling range")
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("analysis: trials must be positive, got %d", cfg.Trials)
	}
	callFrequency := cfg.CallFrequency
	if callFrequency == 0 {
		callFrequency = cfg.CallingRange.PercentOfAll()
	}
	if callFrequency < 0 || callFrequency > 1 {
		return nil, fmt.Errorf("analysis: call frequency %.3f outside [0,1]", callFrequency)
	}

	others := make([]icm.Player, len(cfg.Others))
	for i, chips := range cfg.Others {
		others[i] = icm.Player{ID: fmt.Sprintf("other%d", i+1), Chips: chips}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	classes := AllHandClasses()
	chart := &Chart{
		Cells:         make([]ChartCell, len(classes)),
		CallFrequency: callFrequency,
		index:         make(map[HandClass]int, len(classes)),
	}
	for i, class := range classes {
		chart.index[class] = i
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, class := range classes {
		g.Go(func() error {
			cellSeed := cfg.Seed + int64(i)*seedStride
			equity, err := AllInEquity(ctx, class, cfg.CallingRange, cfg.Trials, cellSeed)
			if err != nil {
				return fmt.Errorf("class %s: %w", class, err)
			}

			decision, err := icm.EvaluatePushFold(icm.PushFoldScenario{
				Hero:                 icm.Player{ID: "hero", Chips: cfg.HeroChips},
				Villain:              icm.Player{ID: "villain", Chips: cfg.VillainChips},
				Others:               others,
				Payouts:              cfg.Payouts,
				SmallBlind:           cfg.SmallBlind,
				BigBlind:             cfg.BigBlind,
				Ante:                 cfg.Ante,
				HeroPosition:         cfg.HeroPosition,
				HeroEquityVsRange:    equity,
				VillainCallFrequency: callFrequency,
			})
			if err != nil {
				return fmt.Errorf("class %s: %w", class, err)
			}

			chart.Cells[i] = ChartCell{
				Class:  class,
				Equity: equity,
				EVPush: decision.EVPush,
				EVFold: decision.EVFold,
				Push:   decision.ShouldPush,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chart, nil
}
