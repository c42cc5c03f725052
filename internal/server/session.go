package server

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/aokiz-ek/gto-trainer/analysis"
	"github.com/aokiz-ek/gto-trainer/icm"
	"github.com/aokiz-ek/gto-trainer/internal/leak"
	"github.com/aokiz-ek/gto-trainer/internal/presets"
	"github.com/aokiz-ek/gto-trainer/internal/randutil"
	"github.com/aokiz-ek/gto-trainer/internal/statistics"
)

const defaultPrizePool = 1000

// Stack depth bounds for generated spots, in big blinds.
const (
	minHeroDepth    = 3
	maxHeroDepth    = 15
	minVillainDepth = 3
	maxVillainDepth = 20
	minOtherDepth   = 5
	maxOtherDepth   = 40
)

// Session is one drill run: a seeded sequence of push/fold spots graded
// against the ICM optimum.
type Session struct {
	ID   string
	Seed int64

	trainer   *Trainer
	rng       *rand.Rand
	payout    presets.PayoutPreset
	blind     presets.BlindLevel
	prizePool float64
	target    int

	mu      sync.Mutex
	dealt   int
	stats   statistics.Session
	pending *pendingSpot
	timer   *quartz.Timer
	closed  bool
	notify  func(*Message)
}

type pendingSpot struct {
	spot     SpotData
	decision *icm.PushFoldDecision
	equity   float64
}

func newSession(t *Trainer, seed int64, target int, payout presets.PayoutPreset, blind presets.BlindLevel, prizePool float64) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Seed:      seed,
		trainer:   t,
		rng:       randutil.New(seed),
		payout:    payout,
		blind:     blind,
		prizePool: prizePool,
		target:    target,
	}
}

// SetNotify installs the sink for messages the session produces on its
// own, such as timeout verdicts. Must be set before the answer clock can
// matter.
func (s *Session) SetNotify(notify func(*Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = notify
}

// deal generates the next spot, computes its hidden verdict and arms the
// answer clock.
func (s *Session) deal(ctx context.Context) (*SpotData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session %s is closed", s.ID)
	}
	if s.pending != nil {
		return nil, fmt.Errorf("session %s already has a pending spot", s.ID)
	}

	spotID := s.dealt + 1
	spot, decision, equity, err := s.generate(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("generate spot %d: %w", spotID, err)
	}

	s.dealt++
	s.pending = &pendingSpot{spot: *spot, decision: decision, equity: equity}

	if timeout := s.trainer.cfg.Drill.AnswerTimeoutSeconds; timeout > 0 {
		spot.TimeoutSeconds = timeout
		s.pending.spot.TimeoutSeconds = timeout
		s.timer = s.trainer.clock.AfterFunc(time.Duration(timeout)*time.Second, func() {
			s.timeoutFired(spotID)
		})
	}
	return spot, nil
}

func (s *Session) generate(ctx context.Context, spotID int) (*SpotData, *icm.PushFoldDecision, float64, error) {
	bb := s.blind.BigBlind
	heroChips := bb * (minHeroDepth + s.rng.Float64()*(maxHeroDepth-minHeroDepth))
	villainChips := bb * (minVillainDepth + s.rng.Float64()*(maxVillainDepth-minVillainDepth))

	fieldSize := 2 + s.rng.IntN(s.trainer.cfg.Drill.MaxFieldSize-1)
	others := make([]float64, fieldSize-2)
	for i := range others {
		others[i] = bb * (minOtherDepth + s.rng.Float64()*(maxOtherDepth-minOtherDepth))
	}

	position := icm.PositionSmallBlind
	if s.rng.IntN(2) == 1 {
		position = icm.PositionBigBlind
	}

	classes := analysis.AllHandClasses()
	hand := classes[s.rng.IntN(len(classes))]

	// Villain defends with the static calling range for their depth.
	callRange := analysis.Tables().CallRange(villainChips / bb)
	equity, err := analysis.AllInEquity(ctx, hand, callRange,
		s.trainer.cfg.Drill.EquityTrials, randutil.Derive(s.Seed, spotID))
	if err != nil {
		return nil, nil, 0, err
	}

	othersPlayers := make([]icm.Player, len(others))
	for i, chips := range others {
		othersPlayers[i] = icm.Player{ID: fmt.Sprintf("other%d", i+1), Chips: chips}
	}

	decision, err := icm.EvaluatePushFold(icm.PushFoldScenario{
		Hero:                 icm.Player{ID: "hero", Chips: heroChips},
		Villain:              icm.Player{ID: "villain", Chips: villainChips},
		Others:               othersPlayers,
		Payouts:              s.payout.Structure(s.prizePool),
		SmallBlind:           s.blind.SmallBlind,
		BigBlind:             s.blind.BigBlind,
		Ante:                 s.blind.Ante,
		HeroPosition:         position,
		HeroEquityVsRange:    equity,
		VillainCallFrequency: callRange.PercentOfAll(),
	})
	if err != nil {
		return nil, nil, 0, err
	}

	spot := &SpotData{
		SessionID:    s.ID,
		SpotID:       spotID,
		Hand:         hand.String(),
		HeroChips:    heroChips,
		VillainChips: villainChips,
		Others:       others,
		SmallBlind:   s.blind.SmallBlind,
		BigBlind:     s.blind.BigBlind,
		Ante:         s.blind.Ante,
		HeroPosition: position.String(),
	}
	return spot, decision, equity, nil
}

// answer grades the pending spot against the player's action.
func (s *Session) answer(spotID int, push bool) (*VerdictData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pending.spot.SpotID != spotID {
		return nil, fmt.Errorf("no pending spot %d in session %s", spotID, s.ID)
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	chose := leak.ActionFold
	if push {
		chose = leak.ActionPush
	}
	return s.score(chose, false)
}

// timeoutFired scores an unanswered spot as a fold and pushes the verdict
// (plus the follow-up spot or summary) through the notify sink.
func (s *Session) timeoutFired(spotID int) {
	s.mu.Lock()
	if s.closed || s.pending == nil || s.pending.spot.SpotID != spotID {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	verdict, err := s.score(leak.ActionFold, true)
	notify := s.notify
	s.mu.Unlock()

	if err != nil || notify == nil {
		return
	}

	if msg, err := NewMessage(MessageTypeVerdict, verdict); err == nil {
		notify(msg)
	}

	if s.finished() {
		summary := s.summary()
		s.trainer.remove(s.ID)
		if msg, err := NewMessage(MessageTypeSummary, summary); err == nil {
			notify(msg)
		}
		return
	}

	spot, err := s.deal(context.Background())
	if err != nil {
		s.trainer.logger.Error("Failed to deal after timeout", "session", s.ID, "error", err)
		return
	}
	if msg, err := NewMessage(MessageTypeSpot, spot); err == nil {
		notify(msg)
	}
}

// score must be called with s.mu held and a pending spot present.
func (s *Session) score(chose leak.Action, timedOut bool) (*VerdictData, error) {
	pending := s.pending
	s.pending = nil

	assessment, err := leak.Assess(pending.decision, chose, s.prizePool)
	if err != nil {
		return nil, err
	}

	s.stats.Add(statistics.SpotResult{
		EVLoss:   assessment.EVLoss,
		Correct:  assessment.Correct,
		Severity: assessment.Severity,
		TimedOut: timedOut,
	})

	optimal := leak.ActionFold
	if pending.decision.ShouldPush {
		optimal = leak.ActionPush
	}

	return &VerdictData{
		SessionID: s.ID,
		SpotID:    pending.spot.SpotID,
		Correct:   assessment.Correct,
		TimedOut:  timedOut,
		Answer:    chose.String(),
		Optimal:   optimal.String(),
		EVPush:    pending.decision.EVPush,
		EVFold:    pending.decision.EVFold,
		EVLoss:    assessment.EVLoss,
		Severity:  assessment.Severity.String(),
		Equity:    pending.equity,
	}, nil
}

func (s *Session) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending == nil && s.dealt >= s.target
}

func (s *Session) summary() *SummaryData {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &SummaryData{
		SessionID: s.ID,
		Seed:      s.Seed,
		Stats: SessionStats{
			Spots:      s.stats.Spots,
			Correct:    s.stats.Correct,
			TimedOut:   s.stats.TimedOut,
			Accuracy:   s.stats.Accuracy(),
			MeanEVLoss: s.stats.Mean(),
			TotalLoss:  s.stats.SumLoss,
			Severities: s.stats.Severities,
		},
	}
}

func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
