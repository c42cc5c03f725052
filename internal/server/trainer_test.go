package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aokiz-ek/gto-trainer/internal/presets"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	// Small trial counts keep the per-spot equity estimate fast in tests.
	cfg.Drill.EquityTrials = 300
	return cfg
}

func newTestTrainer(t *testing.T, clock quartz.Clock) *Trainer {
	t.Helper()
	logger := log.New(io.Discard)
	return NewTrainer(testConfig(), presets.Default(), clock, logger)
}

func TestTrainerSessionFlow(t *testing.T) {
	trainer := newTestTrainer(t, quartz.NewReal())
	ctx := context.Background()

	session, spot, err := trainer.StartSession(ctx, StartSessionData{Spots: 2, Seed: 42})
	require.NoError(t, err)
	require.NotNil(t, spot)

	assert.Equal(t, session.ID, spot.SessionID)
	assert.Equal(t, 1, spot.SpotID)
	assert.NotEmpty(t, spot.Hand)
	assert.Greater(t, spot.HeroChips, 0.0)
	assert.Contains(t, []string{"SB", "BB"}, spot.HeroPosition)
	assert.Equal(t, 1, trainer.SessionCount())

	verdict, next, summary, err := trainer.Answer(ctx, AnswerData{
		SessionID: session.ID, SpotID: 1, Push: true,
	})
	require.NoError(t, err)
	require.NotNil(t, verdict)
	require.NotNil(t, next)
	assert.Nil(t, summary)

	assert.Equal(t, 1, verdict.SpotID)
	assert.Equal(t, "push", verdict.Answer)
	assert.Contains(t, []string{"push", "fold"}, verdict.Optimal)
	assert.Equal(t, verdict.Correct, verdict.EVLoss == 0)
	assert.Equal(t, 2, next.SpotID)

	verdict, next, summary, err = trainer.Answer(ctx, AnswerData{
		SessionID: session.ID, SpotID: 2, Push: false,
	})
	require.NoError(t, err)
	require.NotNil(t, verdict)
	assert.Nil(t, next)
	require.NotNil(t, summary)

	assert.Equal(t, 2, summary.Stats.Spots)
	assert.Equal(t, int64(42), summary.Seed)
	assert.Equal(t, 0, trainer.SessionCount())
}

func TestTrainerDeterministicSeed(t *testing.T) {
	ctx := context.Background()

	trainerA := newTestTrainer(t, quartz.NewReal())
	trainerB := newTestTrainer(t, quartz.NewReal())

	_, spotA, err := trainerA.StartSession(ctx, StartSessionData{Spots: 1, Seed: 7})
	require.NoError(t, err)
	_, spotB, err := trainerB.StartSession(ctx, StartSessionData{Spots: 1, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, spotA.Hand, spotB.Hand)
	assert.Equal(t, spotA.HeroChips, spotB.HeroChips)
	assert.Equal(t, spotA.VillainChips, spotB.VillainChips)
	assert.Equal(t, spotA.Others, spotB.Others)
	assert.Equal(t, spotA.HeroPosition, spotB.HeroPosition)
}

func TestTrainerAnswerTimeout(t *testing.T) {
	mock := quartz.NewMock(t)
	trainer := newTestTrainer(t, mock)
	ctx := context.Background()

	session, spot, err := trainer.StartSession(ctx, StartSessionData{Spots: 1, Seed: 11})
	require.NoError(t, err)
	assert.Equal(t, trainer.cfg.Drill.AnswerTimeoutSeconds, spot.TimeoutSeconds)

	messages := make(chan *Message, 4)
	session.SetNotify(func(msg *Message) { messages <- msg })

	timeout := time.Duration(trainer.cfg.Drill.AnswerTimeoutSeconds) * time.Second
	mock.Advance(timeout).MustWait(ctx)

	verdict := <-messages
	assert.Equal(t, MessageTypeVerdict, verdict.Type)
	assert.Contains(t, string(verdict.Data), `"timedOut":true`)
	assert.Contains(t, string(verdict.Data), `"answer":"fold"`)

	summary := <-messages
	assert.Equal(t, MessageTypeSummary, summary.Type)
	assert.Equal(t, 0, trainer.SessionCount())
}

func TestTrainerAnswerAfterTimeoutRejected(t *testing.T) {
	mock := quartz.NewMock(t)
	trainer := newTestTrainer(t, mock)
	ctx := context.Background()

	session, _, err := trainer.StartSession(ctx, StartSessionData{Spots: 1, Seed: 13})
	require.NoError(t, err)
	session.SetNotify(func(*Message) {})

	timeout := time.Duration(trainer.cfg.Drill.AnswerTimeoutSeconds) * time.Second
	mock.Advance(timeout).MustWait(ctx)

	_, _, _, err = trainer.Answer(ctx, AnswerData{SessionID: session.ID, SpotID: 1, Push: true})
	assert.Error(t, err)
}

func TestTrainerEndSessionEarly(t *testing.T) {
	trainer := newTestTrainer(t, quartz.NewReal())
	ctx := context.Background()

	session, _, err := trainer.StartSession(ctx, StartSessionData{Spots: 10, Seed: 5})
	require.NoError(t, err)

	_, _, _, err = trainer.Answer(ctx, AnswerData{SessionID: session.ID, SpotID: 1, Push: false})
	require.NoError(t, err)

	summary, err := trainer.EndSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Stats.Spots)
	assert.Equal(t, 0, trainer.SessionCount())

	_, err = trainer.EndSession(session.ID)
	assert.Error(t, err)
}

func TestTrainerErrors(t *testing.T) {
	trainer := newTestTrainer(t, quartz.NewReal())
	ctx := context.Background()

	_, _, err := trainer.StartSession(ctx, StartSessionData{Spots: 0})
	assert.Error(t, err)

	_, _, err = trainer.StartSession(ctx, StartSessionData{Spots: 1, PayoutPreset: "nope"})
	assert.Error(t, err)

	_, _, err = trainer.StartSession(ctx, StartSessionData{Spots: 1, BlindLevel: "nope"})
	assert.Error(t, err)

	_, _, _, err = trainer.Answer(ctx, AnswerData{SessionID: "missing", SpotID: 1})
	assert.Error(t, err)

	session, _, err := trainer.StartSession(ctx, StartSessionData{Spots: 1, Seed: 3})
	require.NoError(t, err)

	// Answering the wrong spot must not consume the pending one.
	_, _, _, err = trainer.Answer(ctx, AnswerData{SessionID: session.ID, SpotID: 99, Push: true})
	assert.Error(t, err)

	_, _, summary, err := trainer.Answer(ctx, AnswerData{SessionID: session.ID, SpotID: 1, Push: true})
	require.NoError(t, err)
	assert.NotNil(t, summary)
}
