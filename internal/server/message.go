package server

import (
	"encoding/json"
	"time"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// StartSessionData opens a drill session. A zero seed lets the server
// pick one; a fixed seed replays the same sequence of spots.
type StartSessionData struct {
	Spots        int     `json:"spots"`
	Seed         int64   `json:"seed,omitempty"`
	PayoutPreset string  `json:"payoutPreset,omitempty"`
	BlindLevel   string  `json:"blindLevel,omitempty"`
	PrizePool    float64 `json:"prizePool,omitempty"`
}

// AnswerData is the player's action for the pending spot.
type AnswerData struct {
	SessionID string `json:"sessionId"`
	SpotID    int    `json:"spotId"`
	Push      bool   `json:"push"`
}

type EndSessionData struct {
	SessionID string `json:"sessionId"`
}

// Server → Client Messages

// SpotData describes one push/fold decision point.
type SpotData struct {
	SessionID    string    `json:"sessionId"`
	SpotID       int       `json:"spotId"`
	Hand         string    `json:"hand"`
	HeroChips    float64   `json:"heroChips"`
	VillainChips float64   `json:"villainChips"`
	Others       []float64 `json:"others"`
	SmallBlind   float64   `json:"smallBlind"`
	BigBlind     float64   `json:"bigBlind"`
	Ante         float64   `json:"ante,omitempty"`
	HeroPosition string    `json:"heroPosition"`
	// TimeoutSeconds is how long the player has before the spot scores
	// as a fold; zero means no limit.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// VerdictData grades an answered (or timed-out) spot.
type VerdictData struct {
	SessionID string  `json:"sessionId"`
	SpotID    int     `json:"spotId"`
	Correct   bool    `json:"correct"`
	TimedOut  bool    `json:"timedOut,omitempty"`
	Answer    string  `json:"answer"`
	Optimal   string  `json:"optimal"`
	EVPush    float64 `json:"evPush"`
	EVFold    float64 `json:"evFold"`
	EVLoss    float64 `json:"evLoss"`
	Severity  string  `json:"severity"`
	Equity    float64 `json:"equity"`
}

// SessionStats is the aggregate scoring block of a summary.
type SessionStats struct {
	Spots      int     `json:"spots"`
	Correct    int     `json:"correct"`
	TimedOut   int     `json:"timedOut"`
	Accuracy   float64 `json:"accuracy"`
	MeanEVLoss float64 `json:"meanEvLoss"`
	TotalLoss  float64 `json:"totalLoss"`
	// Severity histogram: none, minor, moderate, major, critical.
	Severities [5]int `json:"severities"`
}

type SummaryData struct {
	SessionID string       `json:"sessionId"`
	Seed      int64        `json:"seed"`
	Stats     SessionStats `json:"stats"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTP API types

// ICMRequest asks for the tournament equity of a field.
type ICMRequest struct {
	Players []ICMPlayer `json:"players"`
	Payouts PayoutSpec  `json:"payouts"`
}

type ICMPlayer struct {
	ID    string  `json:"id"`
	Chips float64 `json:"chips"`
}

type PayoutSpec struct {
	Places       []float64 `json:"places"`
	IsPercentage bool      `json:"isPercentage"`
	PrizePool    float64   `json:"prizePool"`
}

// PushFoldRequest asks for a one-off push/fold evaluation.
type PushFoldRequest struct {
	Hero                 ICMPlayer   `json:"hero"`
	Villain              ICMPlayer   `json:"villain"`
	Others               []ICMPlayer `json:"others,omitempty"`
	Payouts              PayoutSpec  `json:"payouts"`
	SmallBlind           float64     `json:"smallBlind"`
	BigBlind             float64     `json:"bigBlind"`
	Ante                 float64     `json:"ante,omitempty"`
	HeroPosition         string      `json:"heroPosition"`
	HeroEquityVsRange    float64     `json:"heroEquityVsRange"`
	VillainCallFrequency float64     `json:"villainCallFrequency"`
	// Action, when set to "push" or "fold", asks for that choice to be
	// graded against the optimum.
	Action string `json:"action,omitempty"`
}

type PushFoldResponse struct {
	ShouldPush bool            `json:"shouldPush"`
	EVPush     float64         `json:"evPush"`
	EVFold     float64         `json:"evFold"`
	Warnings   []string        `json:"warnings,omitempty"`
	Assessment *AssessmentData `json:"assessment,omitempty"`
}

// AssessmentData grades a submitted action.
type AssessmentData struct {
	Correct  bool    `json:"correct"`
	EVLoss   float64 `json:"evLoss"`
	LossPct  float64 `json:"lossPct"`
	Severity string  `json:"severity"`
}
