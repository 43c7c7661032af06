package metrics

import (
	"github.com/imkarma/pulse/internal/ticket"
)

// Result is a computed metric value. Undefined marks ratios whose
// denominator was zero: the value is 0 by policy, and callers may
// render it as "N/A" instead.
type Result struct {
	Value     float64
	Undefined bool
}

// Params carries the optional inputs a metric may need.
type Params struct {
	Sprint   string  // sprint id for per-sprint metrics
	Capacity float64 // declared team capacity in hours, for capacity_utilization
}

// Names of the supported metrics, in the order Names() reports them.
const (
	MetricVelocity       = "velocity"
	MetricPlannedPoints  = "planned_points"
	MetricCompletionRate = "completion_rate"
	MetricCapacityUtil   = "capacity_utilization"
	MetricAvgCycleTime   = "avg_cycle_time"
	MetricBugRatio       = "bug_ratio"
	MetricResolutionRate = "resolution_rate"
	MetricSpilloverCount = "spillover_count"
)

// Names lists every metric Calculate accepts.
func Names() []string {
	return []string{
		MetricVelocity, MetricPlannedPoints, MetricCompletionRate,
		MetricCapacityUtil, MetricAvgCycleTime, MetricBugRatio,
		MetricResolutionRate, MetricSpilloverCount,
	}
}

// Calculate computes a metric by name. Per-sprint metrics require
// params.Sprint and fail with *ticket.NotFoundError when no ticket
// references the sprint; view metrics (bug_ratio, resolution_rate,
// avg_cycle_time) fall back to the whole store when no sprint is
// given. Unknown names fail with *UnsupportedMetricError.
func Calculate(st *ticket.Store, name string, params Params) (Result, error) {
	switch name {
	case MetricVelocity, MetricPlannedPoints, MetricCompletionRate,
		MetricCapacityUtil, MetricSpilloverCount:
		v, err := st.BySprint(params.Sprint)
		if err != nil {
			return Result{}, err
		}
		switch name {
		case MetricVelocity:
			return Result{Value: Velocity(v)}, nil
		case MetricPlannedPoints:
			return Result{Value: PlannedPoints(v)}, nil
		case MetricCompletionRate:
			return CompletionRate(v), nil
		case MetricSpilloverCount:
			return Result{Value: float64(SpilloverCount(v))}, nil
		default:
			util, err := CapacityUtilization(v, params.Capacity)
			if err != nil {
				return Result{}, err
			}
			return Result{Value: util}, nil
		}
	case MetricAvgCycleTime, MetricBugRatio, MetricResolutionRate:
		v := st.All()
		if params.Sprint != "" {
			sv, err := st.BySprint(params.Sprint)
			if err != nil {
				return Result{}, err
			}
			v = sv
		}
		switch name {
		case MetricAvgCycleTime:
			return Result{Value: AvgCycleTime(v)}, nil
		case MetricBugRatio:
			return Result{Value: BugRatio(v)}, nil
		default:
			return ResolutionRate(v), nil
		}
	default:
		return Result{}, &UnsupportedMetricError{Name: name}
	}
}

// Velocity is the sum of story points over Done tickets. A sprint with
// no Done tickets has velocity 0.
func Velocity(v ticket.View) float64 {
	total := 0.0
	for _, t := range v {
		if t.Done() {
			total += t.StoryPoints
		}
	}
	return total
}

// PlannedPoints is the sum of story points over every ticket in the
// view, regardless of status.
func PlannedPoints(v ticket.View) float64 {
	total := 0.0
	for _, t := range v {
		total += t.StoryPoints
	}
	return total
}

// CompletionRate is 100 x completed points / planned points. A view
// with zero planned points yields 0 flagged Undefined.
func CompletionRate(v ticket.View) Result {
	planned := PlannedPoints(v)
	if planned == 0 {
		return Result{Value: 0, Undefined: true}
	}
	return Result{Value: 100 * Velocity(v) / planned}
}

// CapacityUtilization is the ratio of actual hours (dev + qa) to the
// declared capacity supplied by the caller. Zero or negative capacity
// is a *MetricError: there is no meaningful zero-policy for it.
func CapacityUtilization(v ticket.View, capacity float64) (float64, error) {
	if capacity <= 0 {
		return 0, &MetricError{Metric: MetricCapacityUtil, Reason: "declared capacity must be positive"}
	}
	actual := 0.0
	for _, t := range v {
		actual += t.DevHours + t.QAHours
	}
	return actual / capacity, nil
}

// AvgCycleTime averages cycle time in whole days over the Done tickets
// that carry both dates; tickets missing either date are ignored. An
// empty sample averages to 0.
func AvgCycleTime(v ticket.View) float64 {
	total, n := 0, 0
	for _, t := range v {
		if days, ok := t.CycleTime(); ok {
			total += days
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// BugRatio is the fraction of tickets that are bugs, 0 on an empty
// view.
func BugRatio(v ticket.View) float64 {
	if len(v) == 0 {
		return 0
	}
	bugs := v.Count(func(t ticket.Ticket) bool { return t.Type == ticket.TypeBug })
	return float64(bugs) / float64(len(v))
}

// ResolutionRate is the fraction of bugs that reached Done. A view
// with no bugs yields 0 flagged Undefined.
func ResolutionRate(v ticket.View) Result {
	bugs := v.Where(func(t ticket.Ticket) bool { return t.Type == ticket.TypeBug })
	if len(bugs) == 0 {
		return Result{Value: 0, Undefined: true}
	}
	resolved := bugs.Count(func(t ticket.Ticket) bool { return t.Done() })
	return Result{Value: float64(resolved) / float64(len(bugs))}
}

// SpilloverCount counts tickets carried into this view's sprint from
// an earlier one.
func SpilloverCount(v ticket.View) int {
	return v.Count(func(t ticket.Ticket) bool { return t.Spillover() })
}
