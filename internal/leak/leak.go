// Package leak grades a player's push/fold answer against the computed
// optimum and sizes the cost of the mistake.
package leak

import (
	"fmt"

	"github.com/aokiz-ek/gto-trainer/icm"
)

// Action is the player's chosen line in a push/fold spot.
type Action int

const (
	ActionFold Action = iota
	ActionPush
)

func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionPush:
		return "push"
	default:
		return "?"
	}
}

// Severity buckets a mistake by the share of the prize pool it burns.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMinor
	SeverityModerate
	SeverityMajor
	SeverityCritical
)

// Prize-pool share thresholds between severity buckets.
const (
	minorThreshold    = 0.005
	moderateThreshold = 0.015
	majorThreshold    = 0.03
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeverityMajor:
		return "major"
	case SeverityCritical:
		return "critical"
	default:
		return "?"
	}
}

// Assessment is the verdict for one answered spot.
type Assessment struct {
	Correct bool
	// EVLoss is the tournament equity given up by the chosen action,
	// zero when the answer was correct.
	EVLoss float64
	// LossPct is EVLoss as a fraction of the prize pool.
	LossPct  float64
	Severity Severity
}

// Assess compares the chosen action against the decision's EVs. A correct
// answer always grades SeverityNone; a wrong one is bucketed by how much
// of the prize pool the EV gap represents.
func Assess(decision *icm.PushFoldDecision, chose Action, prizePool float64) (Assessment, error) {
	if decision == nil {
		return Assessment{}, fmt.Errorf("leak: nil decision")
	}
	if prizePool <= 0 {
		return Assessment{}, fmt.Errorf("leak: prize pool must be positive, got %v", prizePool)
	}

	best := decision.EVFold
	if decision.ShouldPush {
		best = decision.EVPush
	}
	chosen := decision.EVFold
	if chose == ActionPush {
		chosen = decision.EVPush
	}

	loss := best - chosen
	if loss < 0 {
		loss = 0
	}
	pct := loss / prizePool

	a := Assessment{
		Correct: (chose == ActionPush) == decision.ShouldPush,
		EVLoss:  loss,
		LossPct: pct,
	}
	if !a.Correct {
		a.Severity = severityFor(pct)
	}
	return a, nil
}

func severityFor(pct float64) Severity {
	switch {
	case pct < minorThreshold:
		return SeverityMinor
	case pct < moderateThreshold:
		return SeverityModerate
	case pct < majorThreshold:
		return SeverityMajor
	default:
		return SeverityCritical
	}
}
