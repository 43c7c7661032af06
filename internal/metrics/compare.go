package metrics

import (
	"math"
	"sort"

	"github.com/imkarma/pulse/internal/query"
	"github.com/imkarma/pulse/internal/ticket"
)

// SprintValue is one point of a cross-sprint comparison.
type SprintValue struct {
	SprintID string
	Value    float64
}

// Compare computes a metric for each sprint, preserving the caller's
// sprint order. Any missing sprint fails the whole comparison.
func Compare(st *ticket.Store, sprintIDs []string, metric string, params Params) ([]SprintValue, error) {
	out := make([]SprintValue, 0, len(sprintIDs))
	for _, id := range sprintIDs {
		p := params
		p.Sprint = id
		res, err := Calculate(st, metric, p)
		if err != nil {
			return nil, err
		}
		out = append(out, SprintValue{SprintID: id, Value: res.Value})
	}
	return out, nil
}

// Rank orders comparison results by value descending, ties broken by
// sprint id ascending. The input slice is left untouched.
func Rank(values []SprintValue) []SprintValue {
	ranked := make([]SprintValue, len(values))
	copy(ranked, values)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].SprintID < ranked[j].SprintID
	})
	return ranked
}

// TrendFit is an ordinary least-squares line over index-vs-value
// pairs, plus the Pearson correlation coefficient.
type TrendFit struct {
	Slope       float64
	Intercept   float64
	Correlation float64
}

// Trend fits a line through the ordered values. Fewer than two points
// cannot define a trend and fail with a query error. A constant series
// has a well-defined flat trend: slope 0, correlation 0.
func Trend(values []float64) (TrendFit, error) {
	n := len(values)
	if n < 2 {
		return TrendFit{}, query.Errorf("trend", "need at least 2 points, got %d", n)
	}

	meanX := float64(n-1) / 2
	meanY := 0.0
	for _, y := range values {
		meanY += y
	}
	meanY /= float64(n)

	var sxx, syy, sxy float64
	for i, y := range values {
		dx := float64(i) - meanX
		dy := y - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if syy == 0 {
		// Constant series: flat line through the mean.
		return TrendFit{Slope: 0, Intercept: meanY, Correlation: 0}, nil
	}

	slope := sxy / sxx
	return TrendFit{
		Slope:       slope,
		Intercept:   meanY - slope*meanX,
		Correlation: sxy / math.Sqrt(sxx*syy),
	}, nil
}
