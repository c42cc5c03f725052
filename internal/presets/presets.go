// Package presets ships the built-in payout structures and blind levels
// and loads user overrides from a YAML file.
package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aokiz-ek/gto-trainer/icm"
)

// PayoutPreset is a named payout structure. Percentage presets scale to
// whatever prize pool a session uses; absolute ones carry fixed amounts.
type PayoutPreset struct {
	Name         string    `yaml:"name"`
	Places       []float64 `yaml:"places"`
	IsPercentage bool      `yaml:"is_percentage"`
}

// Structure binds the preset to a prize pool.
func (p PayoutPreset) Structure(prizePool float64) icm.PayoutStructure {
	return icm.PayoutStructure{
		Places:         p.Places,
		IsPercentage:   p.IsPercentage,
		TotalPrizePool: prizePool,
	}
}

// BlindLevel is a named blind and ante configuration.
type BlindLevel struct {
	Name       string  `yaml:"name"`
	SmallBlind float64 `yaml:"small_blind"`
	BigBlind   float64 `yaml:"big_blind"`
	Ante       float64 `yaml:"ante"`
}

// Set is the full preset catalogue.
type Set struct {
	Payouts []PayoutPreset `yaml:"payouts"`
	Blinds  []BlindLevel   `yaml:"blinds"`
}

// Default returns the built-in catalogue.
func Default() *Set {
	return &Set{
		Payouts: []PayoutPreset{
			{Name: "sng-9max", Places: []float64{50, 30, 20}, IsPercentage: true},
			{Name: "heads-up", Places: []float64{100}, IsPercentage: true},
			{Name: "mtt-final-table", Places: []float64{30, 20, 14, 10, 8, 6.5, 5, 3.5, 3}, IsPercentage: true},
		},
		Blinds: []BlindLevel{
			{Name: "early", SmallBlind: 50, BigBlind: 100},
			{Name: "middle", SmallBlind: 200, BigBlind: 400, Ante: 50},
			{Name: "late", SmallBlind: 500, BigBlind: 1000, Ante: 100},
		},
	}
}

// Load reads a catalogue from a YAML file. A missing file or an empty path
// yields the built-in defaults; a present but invalid file is an error.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	if len(set.Payouts) == 0 {
		set.Payouts = Default().Payouts
	}
	if len(set.Blinds) == 0 {
		set.Blinds = Default().Blinds
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return &set, nil
}

// Validate checks the catalogue for internal consistency.
func (s *Set) Validate() error {
	names := make(map[string]bool, len(s.Payouts))
	for _, p := range s.Payouts {
		if p.Name == "" {
			return fmt.Errorf("payout preset with empty name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate payout preset %q", p.Name)
		}
		names[p.Name] = true
		if len(p.Places) == 0 {
			return fmt.Errorf("payout preset %q has no places", p.Name)
		}
		var sum float64
		for i, place := range p.Places {
			if place <= 0 {
				return fmt.Errorf("payout preset %q: place %d must be positive", p.Name, i+1)
			}
			if i > 0 && place > p.Places[i-1] {
				return fmt.Errorf("payout preset %q: places must not increase", p.Name)
			}
			sum += place
		}
		if p.IsPercentage && sum > 100+1e-9 {
			return fmt.Errorf("payout preset %q: percentages sum to %.2f", p.Name, sum)
		}
	}

	names = make(map[string]bool, len(s.Blinds))
	for _, b := range s.Blinds {
		if b.Name == "" {
			return fmt.Errorf("blind level with empty name")
		}
		if names[b.Name] {
			return fmt.Errorf("duplicate blind level %q", b.Name)
		}
		names[b.Name] = true
		if b.SmallBlind <= 0 || b.BigBlind <= 0 {
			return fmt.Errorf("blind level %q: blinds must be positive", b.Name)
		}
		if b.SmallBlind > b.BigBlind {
			return fmt.Errorf("blind level %q: small blind exceeds big blind", b.Name)
		}
		if b.Ante < 0 {
			return fmt.Errorf("blind level %q: ante must not be negative", b.Name)
		}
	}
	return nil
}

// Payout looks a payout preset up by name.
func (s *Set) Payout(name string) (PayoutPreset, error) {
	for _, p := range s.Payouts {
		if p.Name == name {
			return p, nil
		}
	}
	return PayoutPreset{}, fmt.Errorf("unknown payout preset %q", name)
}

// Blind looks a blind level up by name.
func (s *Set) Blind(name string) (BlindLevel, error) {
	for _, b := range s.Blinds {
		if b.Name == name {
			return b, nil
		}
	}
	return BlindLevel{}, fmt.Errorf("unknown blind level %q", name)
}
