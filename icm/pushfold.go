package icm

import (
	"errors"
	"fmt"
	"math"
)

// Position is the seat hero occupies for a push/fold decision. Push/fold
// spots are blind-versus-blind by construction; other players have already
// folded and contribute only antes.
type Position int

const (
	PositionSmallBlind Position = iota
	PositionBigBlind
)

func (p Position) String() string {
	switch p {
	case PositionSmallBlind:
		return "SB"
	case PositionBigBlind:
		return "BB"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// PushFoldScenario describes one all-in-or-fold decision. Hero acts first:
// either folding the blind away or pushing the whole stack, which villain
// calls at VillainCallFrequency and then wins the showdown with probability
// 1-HeroEquityVsRange.
type PushFoldScenario struct {
	Hero    Player
	Villain Player
	Others  []Player
	Payouts PayoutStructure

	SmallBlind float64
	BigBlind   float64
	Ante       float64

	HeroPosition Position

	HeroEquityVsRange    float64
	VillainCallFrequency float64
}

// PushFoldDecision compares the ICM expected value of pushing all-in
// against folding.
type PushFoldDecision struct {
	EVPush     float64 `json:"evPush"`
	EVFold     float64 `json:"evFold"`
	ShouldPush bool    `json:"shouldPush"`

	// Branch equities, exposed for display and leak scoring.
	EVVillainFolds float64 `json:"evVillainFolds"`
	EVCalledWin    float64 `json:"evCalledWin"`
	EVCalledLose   float64 `json:"evCalledLose"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// EvaluatePushFold derives the hypothetical chip configurations reachable
// from the scenario, runs the full ICM pipeline on each, and blends the
// resulting hero equities into push and fold expected values.
//
// Chip movement is conserving: antes from every seat are dead money that
// the hand's winner collects, and blinds ride inside the all-in commitment.
// The matched amount at showdown is the shorter post-ante stack. A hero
// busted by a branch is worth the last-place payout of the pre-branch
// field.
func EvaluatePushFold(s PushFoldScenario) (*PushFoldDecision, error) {
	if s.HeroEquityVsRange < 0 || s.HeroEquityVsRange > 1 {
		return nil, &DomainError{Msg: fmt.Sprintf("hero equity %.3f outside [0,1]", s.HeroEquityVsRange)}
	}
	if s.VillainCallFrequency < 0 || s.VillainCallFrequency > 1 {
		return nil, &DomainError{Msg: fmt.Sprintf("call frequency %.3f outside [0,1]", s.VillainCallFrequency)}
	}
	if s.Hero.Chips <= 0 || s.Villain.Chips <= 0 {
		return nil, &DomainError{Msg: "hero and villain must both hold chips"}
	}
	if s.SmallBlind < 0 || s.BigBlind < 0 || s.Ante < 0 {
		return nil, &DomainError{Msg: "blinds and ante must not be negative"}
	}
	if s.HeroPosition != PositionSmallBlind && s.HeroPosition != PositionBigBlind {
		return nil, &DomainError{Msg: "hero must be in the small or big blind"}
	}

	others := ActivePlayers(s.Others)
	field := make([]Player, 0, len(others)+2)
	field = append(field, s.Hero, s.Villain)
	field = append(field, others...)
	if err := validateField(field); err != nil {
		return nil, err
	}
	baseAmounts, _, err := s.Payouts.Resolve(len(field))
	if err != nil {
		return nil, err
	}
	bustValue := baseAmounts[len(baseAmounts)-1]

	heroBlind, villainBlind := s.SmallBlind, s.BigBlind
	if s.HeroPosition == PositionBigBlind {
		heroBlind, villainBlind = s.BigBlind, s.SmallBlind
	}
	deadAntes := s.Ante * float64(len(field))

	// Hero folds: blinds and antes go to villain.
	foldField := s.branchField(others,
		s.Hero.Chips-heroBlind-s.Ante,
		s.Villain.Chips+heroBlind+deadAntes-s.Ante)

	// Villain folds to the push: hero picks up the pot instead.
	stealField := s.branchField(others,
		s.Hero.Chips+villainBlind+deadAntes-s.Ante,
		s.Villain.Chips-villainBlind-s.Ante)

	// Showdown branches: the shorter post-ante stack sets the matched
	// amount; the winner collects it along with the dead antes.
	heroEff := s.Hero.Chips - s.Ante
	villainEff := s.Villain.Chips - s.Ante
	matched := math.Min(heroEff, villainEff)
	winField := s.branchField(others, heroEff+matched+deadAntes, villainEff-matched)
	loseField := s.branchField(others, heroEff-matched, villainEff+matched+deadAntes)

	d := &PushFoldDecision{}
	branches := []struct {
		field []Player
		ev    *float64
	}{
		{foldField, &d.EVFold},
		{stealField, &d.EVVillainFolds},
		{winField, &d.EVCalledWin},
		{loseField, &d.EVCalledLose},
	}
	for _, b := range branches {
		ev, warns, err := heroBranchEquity(b.field, s.Hero.ID, s.Payouts, bustValue)
		if err != nil {
			return nil, err
		}
		*b.ev = ev
		d.Warnings = append(d.Warnings, warns...)
	}

	evCalled := s.HeroEquityVsRange*d.EVCalledWin + (1-s.HeroEquityVsRange)*d.EVCalledLose
	d.EVPush = (1-s.VillainCallFrequency)*d.EVVillainFolds + s.VillainCallFrequency*evCalled
	d.ShouldPush = d.EVPush > d.EVFold
	return d, nil
}

// branchField assembles one hypothetical configuration. Other players pay
// their ante in every branch; hero and villain stacks arrive pre-adjusted.
func (s PushFoldScenario) branchField(others []Player, heroChips, villainChips float64) []Player {
	field := make([]Player, 0, len(others)+2)
	field = append(field,
		Player{ID: s.Hero.ID, Chips: heroChips},
		Player{ID: s.Villain.ID, Chips: villainChips})
	for _, o := range others {
		field = append(field, Player{ID: o.ID, Chips: o.Chips - s.Ante})
	}
	return field
}

// heroBranchEquity runs the full ICM pipeline over one hypothetical field
// and extracts hero's equity. A hero holding no chips in the branch busted
// in last place of the pre-branch field; a branch whose active set comes
// out empty is valued the same way and flagged rather than failed.
func heroBranchEquity(field []Player, heroID string, payouts PayoutStructure, bustValue float64) (float64, []Warning, error) {
	for _, p := range field {
		if p.ID == heroID && p.Chips <= 0 {
			return bustValue, nil, nil
		}
	}
	result, err := Calculate(field, payouts)
	if err != nil {
		var domainErr *DomainError
		if errors.As(err, &domainErr) {
			return bustValue, []Warning{{Code: WarnEmptyBranch, Detail: domainErr.Msg}}, nil
		}
		return 0, nil, err
	}
	if pr := result.Player(heroID); pr != nil {
		return pr.Equity, result.Warnings, nil
	}
	return bustValue, result.Warnings, nil
}
