package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aokiz-ek/gto-trainer/analysis"
	"github.com/aokiz-ek/gto-trainer/icm"
)

// PushFoldCmd evaluates a single push/fold decision
type PushFoldCmd struct {
	Hero     float64 `kong:"required,help='Hero chip stack'"`
	Villain  float64 `kong:"required,help='Villain chip stack'"`
	Others   string  `kong:"help='Bystander stacks, comma separated'"`
	Blinds   string  `kong:"default='500/1000',help='Blinds as small/big'"`
	Ante     float64 `kong:"help='Ante paid by every seat'"`
	Position string  `kong:"default='SB',enum='SB,BB,sb,bb',help='Hero position'"`

	Payouts   string  `kong:"default='50,30,20',help='Payout places, comma separated'"`
	Absolute  bool    `kong:"help='Treat payouts as fixed amounts instead of prize-pool percentages'"`
	PrizePool float64 `kong:"default='1000',help='Total prize pool'"`

	Hand     string  `kong:"help='Hero hand class (e.g. A5s); equity is then estimated against the depth-based calling range'"`
	Equity   float64 `kong:"help='Hero equity versus the calling range, if --hand is not given'"`
	CallFreq float64 `kong:"name='call-freq',help='Villain call frequency; defaults to the calling range density'"`

	Trials int    `kong:"default='100000',help='Monte Carlo trials for the equity estimate'"`
	Seed   *int64 `kong:"help='Random seed for reproducible equity estimates'"`
}

func (c *PushFoldCmd) Run(logger *log.Logger) error {
	smallBlind, bigBlind, err := parseBlinds(c.Blinds)
	if err != nil {
		return err
	}

	payouts, err := parseFloats(c.Payouts)
	if err != nil {
		return fmt.Errorf("invalid payouts: %w", err)
	}

	var others []icm.Player
	if c.Others != "" {
		stacks, err := parseFloats(c.Others)
		if err != nil {
			return fmt.Errorf("invalid bystander stacks: %w", err)
		}
		for i, chips := range stacks {
			others = append(others, icm.Player{ID: fmt.Sprintf("other%d", i+1), Chips: chips})
		}
	}

	position := icm.PositionSmallBlind
	if strings.EqualFold(c.Position, "BB") {
		position = icm.PositionBigBlind
	}

	equity := c.Equity
	callFreq := c.CallFreq
	if c.Hand != "" {
		hand, err := analysis.ParseHandClass(c.Hand)
		if err != nil {
			return err
		}
		callRange := analysis.Tables().CallRange(c.Villain / bigBlind)
		if callFreq == 0 {
			callFreq = callRange.PercentOfAll()
		}

		seed := time.Now().UnixNano()
		if c.Seed != nil {
			seed = *c.Seed
		}
		equity, err = analysis.AllInEquity(context.Background(), hand, callRange, c.Trials, seed)
		if err != nil {
			return err
		}
		logger.Debug("Estimated equity", "hand", hand, "equity", equity,
			"callRange", callRange.PercentOfAll(), "seed", seed)
	}

	decision, err := icm.EvaluatePushFold(icm.PushFoldScenario{
		Hero:                 icm.Player{ID: "hero", Chips: c.Hero},
		Villain:              icm.Player{ID: "villain", Chips: c.Villain},
		Others:               others,
		Payouts:              icm.PayoutStructure{Places: payouts, IsPercentage: !c.Absolute, TotalPrizePool: c.PrizePool},
		SmallBlind:           smallBlind,
		BigBlind:             bigBlind,
		Ante:                 c.Ante,
		HeroPosition:         position,
		HeroEquityVsRange:    equity,
		VillainCallFrequency: callFreq,
	})
	if err != nil {
		return err
	}

	verdict := "FOLD"
	if decision.ShouldPush {
		verdict = "PUSH"
	}
	fmt.Printf("%s\n\n", headerStyle.Render(verdict))
	fmt.Printf("EV(push): %s\n", equityStyle.Render(fmt.Sprintf("%.2f", decision.EVPush)))
	fmt.Printf("EV(fold): %s\n", equityStyle.Render(fmt.Sprintf("%.2f", decision.EVFold)))
	fmt.Printf("Diff:     %+.2f\n", decision.EVPush-decision.EVFold)
	if c.Hand != "" {
		fmt.Printf("Equity:   %.1f%% vs %.1f%% calling range\n", equity*100, callFreq*100)
	}

	for _, warning := range decision.Warnings {
		fmt.Println(warnStyle.Render(fmt.Sprintf("warning: %s (%s)", warning.Code, warning.Detail)))
	}
	return nil
}

func parseBlinds(s string) (small, big float64, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("blinds must be small/big, got %q", s)
	}
	small, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid small blind: %w", err)
	}
	big, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid big blind: %w", err)
	}
	return small, big, nil
}
