// Package statistics aggregates the outcomes of a training session.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/aokiz-ek/gto-trainer/internal/leak"
)

// SpotResult is the scored outcome of one drill spot.
type SpotResult struct {
	EVLoss   float64 // tournament equity given up by the answer
	Correct  bool
	Severity leak.Severity
	TimedOut bool // unanswered spots score as the passive action
}

// Session accumulates drill results. EV losses keep a sum of squares for
// variance and the raw values for median and percentile queries.
type Session struct {
	Spots    int
	Correct  int
	TimedOut int

	SumLoss  float64
	SumLoss2 float64
	Losses   []float64

	// Severity histogram indexed by leak.Severity.
	Severities [5]int
}

// Add incorporates one scored spot.
func (s *Session) Add(result SpotResult) {
	s.Spots++
	if result.Correct {
		s.Correct++
	}
	if result.TimedOut {
		s.TimedOut++
	}

	loss := result.EVLoss
	s.SumLoss += loss
	s.SumLoss2 += loss * loss
	s.Losses = append(s.Losses, loss)

	if result.Severity >= 0 && int(result.Severity) < len(s.Severities) {
		s.Severities[result.Severity]++
	}
}

// Accuracy returns the fraction of spots answered correctly.
func (s *Session) Accuracy() float64 {
	if s.Spots == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Spots)
}

// Mean returns the average EV loss per spot.
func (s *Session) Mean() float64 {
	if s.Spots == 0 {
		return 0
	}
	return s.SumLoss / float64(s.Spots)
}

// Variance returns the sample variance of the EV losses.
func (s *Session) Variance() float64 {
	if s.Spots < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumLoss2 - float64(s.Spots)*mean*mean) / float64(s.Spots-1)
}

// StdDev returns the sample standard deviation of the EV losses.
func (s *Session) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean EV loss.
func (s *Session) StdError() float64 {
	if s.Spots == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Spots))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// EV loss.
func (s *Session) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median EV loss.
func (s *Session) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the EV loss at the given percentile (0.0 to 1.0),
// linearly interpolated.
func (s *Session) Percentile(p float64) float64 {
	if len(s.Losses) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Losses))
	copy(sorted, s.Losses)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeverityCount returns how many spots landed in the severity bucket.
func (s *Session) SeverityCount(severity leak.Severity) int {
	if severity < 0 || int(severity) >= len(s.Severities) {
		return 0
	}
	return s.Severities[severity]
}

// Validate checks the session's internal accounting.
func (s *Session) Validate() error {
	if s.Spots < 0 {
		return fmt.Errorf("invalid spot count: %d", s.Spots)
	}
	if len(s.Losses) != s.Spots {
		return fmt.Errorf("loss values length (%d) does not match spot count (%d)",
			len(s.Losses), s.Spots)
	}
	if s.Correct > s.Spots {
		return fmt.Errorf("correct answers (%d) exceed spot count (%d)", s.Correct, s.Spots)
	}
	if s.TimedOut > s.Spots {
		return fmt.Errorf("timeouts (%d) exceed spot count (%d)", s.TimedOut, s.Spots)
	}

	bucketed := 0
	for _, count := range s.Severities {
		bucketed += count
	}
	if bucketed != s.Spots {
		return fmt.Errorf("severity buckets total %d, want %d", bucketed, s.Spots)
	}
	return nil
}
