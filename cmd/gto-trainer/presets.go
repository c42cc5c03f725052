package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/aokiz-ek/gto-trainer/internal/presets"
)

// PresetsCmd lists the payout and blind presets
type PresetsCmd struct {
	File string `kong:"help='Preset file to load instead of the built-ins'"`
}

func (c *PresetsCmd) Run(logger *log.Logger) error {
	set, err := presets.Load(c.File)
	if err != nil {
		return err
	}
	if c.File != "" {
		logger.Debug("Loaded presets", "file", c.File)
	}

	fmt.Println(headerStyle.Render("Payout structures"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPLACES\tTYPE")
	for _, payout := range set.Payouts {
		places := make([]string, len(payout.Places))
		for i, place := range payout.Places {
			places[i] = fmt.Sprintf("%g", place)
		}
		kind := "absolute"
		if payout.IsPercentage {
			kind = "percentage"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", payout.Name, strings.Join(places, "/"), kind)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(headerStyle.Render("Blind levels"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSMALL\tBIG\tANTE")
	for _, blind := range set.Blinds {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", blind.Name, blind.SmallBlind, blind.BigBlind, blind.Ante)
	}
	w.Flush()
	return nil
}
