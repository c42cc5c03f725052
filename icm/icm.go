package icm

import "fmt"

// Player is a tournament entrant identified by ID. Chips at or below zero
// mean the player is already eliminated.
type Player struct {
	ID    string  `json:"id"`
	Chips float64 `json:"chips"`
}

// ActivePlayers filters players down to those still holding chips. The
// input slice is never mutated.
func ActivePlayers(players []Player) []Player {
	active := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Chips > 0 {
			active = append(active, p)
		}
	}
	return active
}

// ConfigError reports a malformed payout configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "icm: " + e.Msg
}

// DomainError reports a structurally unusable scenario, such as an empty
// active-player set or negative chip counts.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return "icm: " + e.Msg
}

// Warning codes attached to results.
const (
	// WarnProbabilitySum flags a finish-probability vector whose entries do
	// not sum to 1 within ProbabilityTolerance.
	WarnProbabilitySum = "probability_sum"

	// WarnEmptyBranch flags a push/fold branch whose simulated outcome left
	// no active players; the branch is valued at the lowest payout.
	WarnEmptyBranch = "empty_branch"
)

// Warning records a non-fatal numerical anomaly observed during a
// calculation. Warnings never abort a calculation; the result is still
// returned with best-effort values.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Detail)
}

func validateField(active []Player) error {
	if len(active) == 0 {
		return &DomainError{Msg: "no active players"}
	}
	if len(active) > MaxFieldSize {
		return &DomainError{Msg: fmt.Sprintf("%d active players exceeds the field limit of %d", len(active), MaxFieldSize)}
	}
	seen := make(map[string]struct{}, len(active))
	for _, p := range active {
		if p.Chips < 0 {
			return &DomainError{Msg: fmt.Sprintf("player %s has negative chips", p.ID)}
		}
		if _, dup := seen[p.ID]; dup {
			return &DomainError{Msg: fmt.Sprintf("duplicate player id %q", p.ID)}
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
