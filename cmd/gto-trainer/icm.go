package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aokiz-ek/gto-trainer/icm"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	playerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	equityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// ICMCmd computes tournament equities for a chip distribution
type ICMCmd struct {
	Stacks    []float64 `arg:"" help:"Chip stacks, largest field first (e.g. 5000 3000 2000)"`
	Payouts   string    `kong:"default='50,30,20',help='Payout places, comma separated'"`
	Absolute  bool      `kong:"help='Treat payouts as fixed amounts instead of prize-pool percentages'"`
	PrizePool float64   `kong:"default='1000',help='Total prize pool'"`
	Probs     bool      `kong:"help='Show the full finish-probability matrix'"`
}

func (c *ICMCmd) Run(logger *log.Logger) error {
	payouts, err := parseFloats(c.Payouts)
	if err != nil {
		return fmt.Errorf("invalid payouts: %w", err)
	}

	players := make([]icm.Player, len(c.Stacks))
	for i, chips := range c.Stacks {
		players[i] = icm.Player{ID: fmt.Sprintf("p%d", i+1), Chips: chips}
	}

	result, err := icm.Calculate(players, icm.PayoutStructure{
		Places:         payouts,
		IsPercentage:   !c.Absolute,
		TotalPrizePool: c.PrizePool,
	})
	if err != nil {
		return err
	}

	printResult(result, c.Probs)

	for _, warning := range result.Warnings {
		logger.Warn("Calculation warning", "code", warning.Code, "detail", warning.Detail)
	}
	return nil
}

func printResult(result *icm.Result, showProbs bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, headerStyle.Render("Player")+"\t"+
		headerStyle.Render("Chips")+"\t"+
		headerStyle.Render("Chip%")+"\t"+
		headerStyle.Render("Equity")+"\t"+
		headerStyle.Render("Equity%"))

	for _, player := range result.Players {
		fmt.Fprintf(w, "%s\t%.0f\t%.2f%%\t%s\t%.2f%%\n",
			playerStyle.Render(player.ID),
			player.Chips,
			player.ChipShare,
			equityStyle.Render(fmt.Sprintf("%.2f", player.Equity)),
			player.EquityShare)
	}
	w.Flush()

	if !showProbs {
		return
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := headerStyle.Render("Player")
	for place := 1; place <= len(result.Players); place++ {
		header += "\t" + headerStyle.Render(ordinal(place))
	}
	fmt.Fprintln(w, header)

	for _, player := range result.Players {
		row := playerStyle.Render(player.ID)
		for _, prob := range player.FinishProbabilities {
			row += fmt.Sprintf("\t%.2f%%", prob*100)
		}
		fmt.Fprintln(w, row)
	}
	w.Flush()
}

func ordinal(n int) string {
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			return fmt.Sprintf("%dst", n)
		}
	case 2:
		if n%100 != 12 {
			return fmt.Sprintf("%dnd", n)
		}
	case 3:
		if n%100 != 13 {
			return fmt.Sprintf("%drd", n)
		}
	}
	return fmt.Sprintf("%dth", n)
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no values in %q", csv)
	}
	return values, nil
}
