package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aokiz-ek/gto-trainer/icm"
	"github.com/aokiz-ek/gto-trainer/internal/leak"
)

// handleICM computes tournament equities for a posted field.
func (s *Server) handleICM(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ICMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.apiError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	players := make([]icm.Player, len(req.Players))
	for i, p := range req.Players {
		players[i] = icm.Player{ID: p.ID, Chips: p.Chips}
	}

	result, err := icm.Calculate(players, payoutStructure(req.Payouts))
	if err != nil {
		s.apiError(w, statusFor(err), "calculation_failed", err.Error())
		return
	}

	s.writeJSON(w, result)
}

// handlePushFold evaluates a single push/fold spot.
func (s *Server) handlePushFold(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PushFoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.apiError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	position, err := parsePosition(req.HeroPosition)
	if err != nil {
		s.apiError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	others := make([]icm.Player, len(req.Others))
	for i, p := range req.Others {
		others[i] = icm.Player{ID: p.ID, Chips: p.Chips}
	}

	decision, err := icm.EvaluatePushFold(icm.PushFoldScenario{
		Hero:                 icm.Player{ID: req.Hero.ID, Chips: req.Hero.Chips},
		Villain:              icm.Player{ID: req.Villain.ID, Chips: req.Villain.Chips},
		Others:               others,
		Payouts:              payoutStructure(req.Payouts),
		SmallBlind:           req.SmallBlind,
		BigBlind:             req.BigBlind,
		Ante:                 req.Ante,
		HeroPosition:         position,
		HeroEquityVsRange:    req.HeroEquityVsRange,
		VillainCallFrequency: req.VillainCallFrequency,
	})
	if err != nil {
		s.apiError(w, statusFor(err), "evaluation_failed", err.Error())
		return
	}

	warnings := make([]string, 0, len(decision.Warnings))
	for _, warning := range decision.Warnings {
		warnings = append(warnings, warning.Code)
	}

	resp := PushFoldResponse{
		ShouldPush: decision.ShouldPush,
		EVPush:     decision.EVPush,
		EVFold:     decision.EVFold,
		Warnings:   warnings,
	}

	if req.Action != "" {
		chose, err := parseAction(req.Action)
		if err != nil {
			s.apiError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		prizePool := req.Payouts.PrizePool
		if !req.Payouts.IsPercentage {
			prizePool = 0
			for _, place := range req.Payouts.Places {
				prizePool += place
			}
		}
		assessment, err := leak.Assess(decision, chose, prizePool)
		if err != nil {
			s.apiError(w, http.StatusBadRequest, "assessment_failed", err.Error())
			return
		}
		resp.Assessment = &AssessmentData{
			Correct:  assessment.Correct,
			EVLoss:   assessment.EVLoss,
			LossPct:  assessment.LossPct,
			Severity: assessment.Severity.String(),
		}
	}

	s.writeJSON(w, resp)
}

func parseAction(name string) (leak.Action, error) {
	switch name {
	case "push":
		return leak.ActionPush, nil
	case "fold":
		return leak.ActionFold, nil
	default:
		return 0, errors.New(`action must be "push" or "fold"`)
	}
}

func payoutStructure(spec PayoutSpec) icm.PayoutStructure {
	return icm.PayoutStructure{
		Places:         spec.Places,
		IsPercentage:   spec.IsPercentage,
		TotalPrizePool: spec.PrizePool,
	}
}

func parsePosition(name string) (icm.Position, error) {
	switch name {
	case "SB", "sb":
		return icm.PositionSmallBlind, nil
	case "BB", "bb":
		return icm.PositionBigBlind, nil
	default:
		return 0, errors.New("heroPosition must be SB or BB")
	}
}

// statusFor maps domain validation failures to 400 and everything else
// to 500.
func statusFor(err error) int {
	var configErr *icm.ConfigError
	var domainErr *icm.DomainError
	if errors.As(err, &configErr) || errors.As(err, &domainErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) apiError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorData{Code: code, Message: message})
}
