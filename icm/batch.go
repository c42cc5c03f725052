package icm

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchScenario is one independent ICM calculation in a batch.
type BatchScenario struct {
	ID      string
	Players []Player
	Payouts PayoutStructure
}

// BatchResult pairs a scenario with its outcome. Err is recorded per
// scenario so one unusable configuration does not poison the rest of the
// batch.
type BatchResult struct {
	ID     string
	Result *Result
	Err    error
}

// CalculateBatch evaluates many independent scenarios concurrently. Each
// calculation owns a private memo table, so scenarios share no state and
// the output order matches the input order. workers <= 0 means one worker
// per CPU. The only error returned is context cancellation.
func CalculateBatch(ctx context.Context, scenarios []BatchScenario, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]BatchResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, scenario := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := Calculate(scenario.Players, scenario.Payouts)
			results[i] = BatchResult{ID: scenario.ID, Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
