// Package health scores sprint quality and workload balance. The
// weighting of the composite score is a policy choice, so it arrives
// as configuration rather than constants.
package health

import (
	"fmt"
	"math"

	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/ticket"
)

// Weights distributes the composite score across its four sub-scores.
// They must sum to 1.
type Weights struct {
	Completion float64 `yaml:"completion"`
	BugRatio   float64 `yaml:"bug_ratio"`
	Spillover  float64 `yaml:"spillover"`
	CycleTime  float64 `yaml:"cycle_time"`
}

// DefaultWeights is the starting policy: completion dominates, bug
// quality second, spillover and cycle time behind.
func DefaultWeights() Weights {
	return Weights{Completion: 0.4, BugRatio: 0.25, Spillover: 0.2, CycleTime: 0.15}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	for _, x := range []float64{w.Completion, w.BugRatio, w.Spillover, w.CycleTime} {
		if x < 0 {
			return fmt.Errorf("health weights must be >= 0")
		}
	}
	if total := w.Completion + w.BugRatio + w.Spillover + w.CycleTime; math.Abs(total-1) > 1e-9 {
		return fmt.Errorf("health weights must sum to 1, got %v", total)
	}
	return nil
}

// Config parameterizes the health score.
type Config struct {
	Weights Weights `yaml:"weights"`
	// CycleTimeTargetDays is the average cycle time that still earns a
	// full cycle-time sub-score; the sub-score decays linearly to 0 at
	// twice the target.
	CycleTimeTargetDays float64 `yaml:"cycle_time_target_days"`
}

// DefaultConfig returns the default scoring policy.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), CycleTimeTargetDays: 3}
}

// Validate checks the scoring policy.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.CycleTimeTargetDays <= 0 {
		return fmt.Errorf("cycle_time_target_days must be positive, got %v", c.CycleTimeTargetDays)
	}
	return nil
}

// Breakdown carries the composite score plus the clamped sub-scores
// that produced it, for display.
type Breakdown struct {
	SprintID   string
	Score      float64 // weighted sum, rounded to one decimal
	Completion float64
	BugRatio   float64 // inverse: 100 means no bugs
	Spillover  float64 // inverse: 100 means nothing carried over
	CycleTime  float64
}

// Score computes the 0-100 composite health of a sprint. Each
// sub-score is clamped to [0,100] before weighting.
func Score(st *ticket.Store, sprintID string, cfg Config) (Breakdown, error) {
	if err := cfg.Validate(); err != nil {
		return Breakdown{}, err
	}
	v, err := st.BySprint(sprintID)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		SprintID:   sprintID,
		Completion: clamp(metrics.CompletionRate(v).Value),
		BugRatio:   clamp(100 * (1 - metrics.BugRatio(v))),
		Spillover:  clamp(100 * (1 - float64(metrics.SpilloverCount(v))/float64(len(v)))),
		CycleTime:  clamp(cycleTimeScore(metrics.AvgCycleTime(v), cfg.CycleTimeTargetDays)),
	}

	w := cfg.Weights
	score := b.Completion*w.Completion + b.BugRatio*w.BugRatio +
		b.Spillover*w.Spillover + b.CycleTime*w.CycleTime
	b.Score = math.Round(score*10) / 10
	return b, nil
}

// cycleTimeScore is 100 at or under the target and decays linearly to
// 0 at twice the target.
func cycleTimeScore(avgDays, target float64) float64 {
	if avgDays <= target {
		return 100
	}
	return 100 * (2*target - avgDays) / target
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(100, x))
}
