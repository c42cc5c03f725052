package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aokiz-ek/gto-trainer/analysis"
	"github.com/aokiz-ek/gto-trainer/icm"
)

var (
	pushStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	foldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// ChartCmd renders a push/fold chart for all 169 hand classes
type ChartCmd struct {
	Hero     float64 `kong:"required,help='Hero chip stack'"`
	Villain  float64 `kong:"required,help='Villain chip stack'"`
	Others   string  `kong:"help='Bystander stacks, comma separated'"`
	Blinds   string  `kong:"default='500/1000',help='Blinds as small/big'"`
	Ante     float64 `kong:"help='Ante paid by every seat'"`
	Position string  `kong:"default='SB',enum='SB,BB,sb,bb',help='Hero position'"`

	Payouts   string  `kong:"default='50,30,20',help='Payout places, comma separated'"`
	Absolute  bool    `kong:"help='Treat payouts as fixed amounts instead of prize-pool percentages'"`
	PrizePool float64 `kong:"default='1000',help='Total prize pool'"`

	CallRange string `kong:"name='call-range',help='Villain calling range; defaults to the depth-based table'"`
	Trials    int    `kong:"default='20000',help='Monte Carlo trials per hand class'"`
	Seed      *int64 `kong:"help='Random seed for a reproducible chart'"`
	Workers   int    `kong:"help='Worker goroutines; defaults to one per CPU'"`
}

func (c *ChartCmd) Run(logger *log.Logger) error {
	smallBlind, bigBlind, err := parseBlinds(c.Blinds)
	if err != nil {
		return err
	}
	payouts, err := parseFloats(c.Payouts)
	if err != nil {
		return fmt.Errorf("invalid payouts: %w", err)
	}

	var others []float64
	if c.Others != "" {
		if others, err = parseFloats(c.Others); err != nil {
			return fmt.Errorf("invalid bystander stacks: %w", err)
		}
	}

	callRange := analysis.Tables().CallRange(c.Villain / bigBlind)
	if c.CallRange != "" {
		if callRange, err = analysis.ParseRange(c.CallRange); err != nil {
			return fmt.Errorf("invalid calling range: %w", err)
		}
	}

	position := icm.PositionSmallBlind
	if strings.EqualFold(c.Position, "BB") {
		position = icm.PositionBigBlind
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	started := time.Now()
	chart, err := analysis.PushChart(context.Background(), analysis.ChartConfig{
		HeroChips:    c.Hero,
		VillainChips: c.Villain,
		Others:       others,
		Payouts:      icm.PayoutStructure{Places: payouts, IsPercentage: !c.Absolute, TotalPrizePool: c.PrizePool},
		SmallBlind:   smallBlind,
		BigBlind:     bigBlind,
		Ante:         c.Ante,
		HeroPosition: position,
		CallingRange: callRange,
		Trials:       c.Trials,
		Seed:         seed,
		Workers:      c.Workers,
	})
	if err != nil {
		return err
	}
	logger.Debug("Chart computed", "elapsed", time.Since(started), "seed", seed)

	printChart(chart)

	fmt.Printf("\nPushing %d of 169 classes (%.1f%% of hands) vs a %.1f%% calling range\n",
		chart.PushCount(), pushPercent(chart), chart.CallFrequency*100)
	return nil
}

// printChart renders the standard 13x13 grid: pairs on the diagonal,
// suited hands above it, offsuit below.
func printChart(chart *analysis.Chart) {
	const ranks = "AKQJT98765432"

	var b strings.Builder
	b.WriteString("    ")
	for _, r := range ranks {
		b.WriteString(fmt.Sprintf("%-5c", r))
	}
	b.WriteString("\n")

	for i, rowRank := range ranks {
		b.WriteString(fmt.Sprintf("%c   ", rowRank))
		for j := range ranks {
			class := gridClass(i, j)
			cell := chart.Cell(class)

			label := fmt.Sprintf("%-5s", class.String())
			if cell != nil && cell.Push {
				b.WriteString(pushStyle.Render(label))
			} else {
				b.WriteString(foldStyle.Render(label))
			}
		}
		b.WriteString("\n")
	}
	fmt.Print(b.String())
}

// gridClass maps grid coordinates to a hand class. Row and column index
// 0 is an ace, 12 a deuce.
func gridClass(row, col int) analysis.HandClass {
	high := uint8(14 - row)
	low := uint8(14 - col)
	switch {
	case row == col:
		return analysis.HandClass{High: high, Low: high}
	case row < col:
		return analysis.HandClass{High: high, Low: low, Suited: true}
	default:
		return analysis.HandClass{High: low, Low: high}
	}
}

func pushPercent(chart *analysis.Chart) float64 {
	var combos, pushed float64
	for _, cell := range chart.Cells {
		n := float64(cell.Class.Combos())
		combos += n
		if cell.Push {
			pushed += n
		}
	}
	if combos == 0 {
		return 0
	}
	return pushed / combos * 100
}
