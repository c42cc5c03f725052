package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	set := Default()
	if err := set.Validate(); err != nil {
		t.Fatalf("default catalogue invalid: %v", err)
	}
	if len(set.Payouts) == 0 || len(set.Blinds) == 0 {
		t.Fatal("default catalogue is empty")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		set, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", path, err)
		}
		if len(set.Payouts) != len(Default().Payouts) {
			t.Errorf("Load(%q) did not fall back to defaults", path)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `payouts:
  - name: winner-take-all
    places: [1000]
blinds:
  - name: turbo
    small_blind: 100
    big_blind: 200
    ante: 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	payout, err := set.Payout("winner-take-all")
	if err != nil {
		t.Fatal(err)
	}
	if payout.IsPercentage {
		t.Error("absolute preset parsed as percentage")
	}
	structure := payout.Structure(0)
	if len(structure.Places) != 1 || structure.Places[0] != 1000 {
		t.Errorf("Structure places = %v, want [1000]", structure.Places)
	}

	blind, err := set.Blind("turbo")
	if err != nil {
		t.Fatal(err)
	}
	if blind.BigBlind != 200 || blind.Ante != 25 {
		t.Errorf("blind level = %+v", blind)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `payouts:
  - name: custom
    places: [60, 40]
    is_percentage: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Payouts) != 1 {
		t.Errorf("got %d payout presets, want the single custom one", len(set.Payouts))
	}
	if len(set.Blinds) != len(Default().Blinds) {
		t.Error("missing blinds section should keep the default levels")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "payouts: ["},
		{"increasing places", "payouts:\n  - name: bad\n    places: [20, 50]\n    is_percentage: true\n"},
		{"over 100 percent", "payouts:\n  - name: bad\n    places: [80, 30]\n    is_percentage: true\n"},
		{"duplicate names", "payouts:\n  - name: x\n    places: [100]\n  - name: x\n    places: [100]\n"},
		{"inverted blinds", "blinds:\n  - name: bad\n    small_blind: 400\n    big_blind: 200\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	set := Default()
	if _, err := set.Payout("nope"); err == nil {
		t.Error("unknown payout lookup should error")
	}
	if _, err := set.Blind("nope"); err == nil {
		t.Error("unknown blind lookup should error")
	}
}

func TestPercentagePresetStructure(t *testing.T) {
	t.Parallel()

	set := Default()
	payout, err := set.Payout("sng-9max")
	if err != nil {
		t.Fatal(err)
	}
	structure := payout.Structure(1000)
	if !structure.IsPercentage || structure.TotalPrizePool != 1000 {
		t.Errorf("Structure = %+v", structure)
	}
}
