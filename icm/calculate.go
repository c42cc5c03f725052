package icm

// PlayerResult is one player's share of a Result.
type PlayerResult struct {
	ID                  string    `json:"id"`
	Chips               float64   `json:"chips"`
	ChipShare           float64   `json:"chipShare"`
	Equity              float64   `json:"equity"`
	EquityShare         float64   `json:"equityShare"`
	FinishProbabilities []float64 `json:"finishProbabilities"`
}

// Result is the outcome of one ICM calculation over a field of active
// players. It is derived output, recomputed on every call and never cached.
type Result struct {
	Players        []PlayerResult `json:"players"`
	TotalPrizePool float64        `json:"totalPrizePool"`
	PayoutAmounts  []float64      `json:"payoutAmounts"`
	Warnings       []Warning      `json:"warnings,omitempty"`
}

// Player returns the result entry for the given ID, or nil.
func (r *Result) Player(id string) *PlayerResult {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// Calculate converts tournament chip stacks into prize-pool equity using
// the Independent Chip Model. Players holding no chips are excluded before
// the calculation; the input slice is never mutated. Result entries follow
// the order of the filtered input.
func Calculate(players []Player, payouts PayoutStructure) (*Result, error) {
	active := ActivePlayers(players)
	if err := validateField(active); err != nil {
		return nil, err
	}

	amounts, pool, err := payouts.Resolve(len(active))
	if err != nil {
		return nil, err
	}

	var totalChips float64
	for _, p := range active {
		totalChips += p.Chips
	}

	result := &Result{
		Players:        make([]PlayerResult, len(active)),
		TotalPrizePool: pool,
		PayoutAmounts:  amounts,
	}

	if len(active) == 2 {
		// Two players left: the closed form replaces the recursion.
		equities := HeadsUpEquity(
			[2]float64{active[0].Chips, active[1].Chips},
			[2]float64{amounts[0], amounts[1]},
		)
		for i, p := range active {
			win := p.Chips / totalChips
			pr := PlayerResult{
				ID:                  p.ID,
				Chips:               p.Chips,
				Equity:              equities[i],
				FinishProbabilities: []float64{win, 1 - win},
			}
			fillShares(&pr, totalChips, pool)
			result.Warnings = append(result.Warnings, checkVector(p.ID, pr.FinishProbabilities)...)
			result.Players[i] = pr
		}
		return result, nil
	}

	calc, err := newCalculator(active)
	if err != nil {
		return nil, err
	}
	for i, p := range active {
		vector := calc.finishVector(i)
		var equity float64
		for k, prob := range vector {
			equity += prob * amounts[k]
		}
		pr := PlayerResult{
			ID:                  p.ID,
			Chips:               p.Chips,
			Equity:              equity,
			FinishProbabilities: vector,
		}
		fillShares(&pr, totalChips, pool)
		result.Warnings = append(result.Warnings, checkVector(p.ID, vector)...)
		result.Players[i] = pr
	}
	return result, nil
}

func fillShares(pr *PlayerResult, totalChips, pool float64) {
	if totalChips > 0 {
		pr.ChipShare = pr.Chips / totalChips * 100
	}
	if pool > 0 {
		pr.EquityShare = pr.Equity / pool * 100
	}
}
