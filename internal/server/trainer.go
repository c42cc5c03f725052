package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/aokiz-ek/gto-trainer/internal/presets"
)

// Trainer owns the drill sessions. It hands out spots, grades answers and
// enforces the per-spot answer clock.
type Trainer struct {
	cfg     *Config
	presets *presets.Set
	clock   quartz.Clock
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewTrainer creates a trainer. Pass quartz.NewReal() outside of tests.
func NewTrainer(cfg *Config, set *presets.Set, clock quartz.Clock, logger *log.Logger) *Trainer {
	return &Trainer{
		cfg:      cfg,
		presets:  set,
		clock:    clock,
		logger:   logger.WithPrefix("trainer"),
		sessions: make(map[string]*Session),
	}
}

// StartSession opens a drill session and deals its first spot.
func (t *Trainer) StartSession(ctx context.Context, data StartSessionData) (*Session, *SpotData, error) {
	if data.Spots <= 0 {
		return nil, nil, fmt.Errorf("spot count must be positive, got %d", data.Spots)
	}

	payoutName := data.PayoutPreset
	if payoutName == "" {
		payoutName = t.cfg.Drill.PayoutPreset
	}
	payout, err := t.presets.Payout(payoutName)
	if err != nil {
		return nil, nil, err
	}

	blindName := data.BlindLevel
	if blindName == "" {
		blindName = t.cfg.Drill.BlindLevel
	}
	blind, err := t.presets.Blind(blindName)
	if err != nil {
		return nil, nil, err
	}

	seed := data.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	prizePool := data.PrizePool
	if prizePool <= 0 {
		prizePool = defaultPrizePool
	}

	session := newSession(t, seed, data.Spots, payout, blind, prizePool)

	t.mu.Lock()
	t.sessions[session.ID] = session
	t.mu.Unlock()

	spot, err := session.deal(ctx)
	if err != nil {
		t.remove(session.ID)
		return nil, nil, err
	}

	t.logger.Info("Session started", "session", session.ID, "spots", data.Spots, "seed", seed)
	return session, spot, nil
}

// Answer grades the pending spot. It returns the verdict plus either the
// next spot or, when the session is finished, its summary.
func (t *Trainer) Answer(ctx context.Context, data AnswerData) (*VerdictData, *SpotData, *SummaryData, error) {
	session, err := t.session(data.SessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	verdict, err := session.answer(data.SpotID, data.Push)
	if err != nil {
		return nil, nil, nil, err
	}

	if session.finished() {
		summary := session.summary()
		t.remove(session.ID)
		return verdict, nil, summary, nil
	}

	spot, err := session.deal(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return verdict, spot, nil, nil
}

// EndSession closes a session early and returns its summary.
func (t *Trainer) EndSession(sessionID string) (*SummaryData, error) {
	session, err := t.session(sessionID)
	if err != nil {
		return nil, err
	}
	session.stop()
	summary := session.summary()
	t.remove(sessionID)

	t.logger.Info("Session ended", "session", sessionID, "spots", summary.Stats.Spots)
	return summary, nil
}

// SessionCount returns the number of live sessions.
func (t *Trainer) SessionCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

func (t *Trainer) session(id string) (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	session, ok := t.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return session, nil
}

func (t *Trainer) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}
