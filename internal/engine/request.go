package engine

import (
	"github.com/imkarma/pulse/internal/health"
	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/query"
	"github.com/imkarma/pulse/internal/ticket"
)

// Kind tags a request with the operation it asks for.
type Kind string

const (
	KindFilter       Kind = "filter"
	KindAggregate    Kind = "aggregate"
	KindMetric       Kind = "metric"
	KindCompare      Kind = "compare"
	KindTrend        Kind = "trend"
	KindHealth       Kind = "health"
	KindDistribution Kind = "distribution"
)

// Request is the typed call surface routers and report generators
// produce. Exactly the fields for its Kind are consulted; a sprint id
// scopes the view where set, otherwise the whole snapshot is used.
type Request struct {
	Kind   Kind
	Sprint string

	// Filter; also narrows the view for Aggregate and Distribution.
	Predicate query.Predicate

	// Aggregate.
	Dimensions []string
	Column     string
	Agg        query.Agg

	// Metric, Compare, Trend.
	Metric  string
	Params  metrics.Params
	Sprints []string
}

// Response holds the result matching the request's Kind; the other
// fields stay zero.
type Response struct {
	Tickets      ticket.View           // Filter
	Grouped      *query.Grouped        // Aggregate (by dimension)
	Value        float64               // Aggregate (plain reduce)
	Metric       metrics.Result        // Metric
	Comparison   []metrics.SprintValue // Compare (caller order)
	Ranking      []metrics.SprintValue // Compare (best first)
	Trend        metrics.TrendFit      // Trend
	Health       health.Breakdown      // Health
	Distribution health.Distribution   // Distribution
}

// Do executes one request against the current snapshot.
func (e *Engine) Do(req Request) (Response, error) {
	st := e.Store()

	view := st.All()
	if req.Sprint != "" {
		v, err := st.BySprint(req.Sprint)
		if err != nil {
			return Response{}, err
		}
		view = v
	}

	switch req.Kind {
	case KindFilter:
		v, err := query.Apply(view, req.Predicate)
		if err != nil {
			return Response{}, err
		}
		return Response{Tickets: v}, nil

	case KindAggregate:
		v, err := query.Apply(view, req.Predicate)
		if err != nil {
			return Response{}, err
		}
		if len(req.Dimensions) == 0 {
			val, err := query.Reduce(v, req.Column, req.Agg)
			if err != nil {
				return Response{}, err
			}
			return Response{Value: val}, nil
		}
		grouped, err := query.GroupBy(v, req.Dimensions)
		if err != nil {
			return Response{}, err
		}
		return Response{Grouped: grouped}, nil

	case KindMetric:
		p := req.Params
		if p.Sprint == "" {
			p.Sprint = req.Sprint
		}
		res, err := metrics.Calculate(st, req.Metric, p)
		if err != nil {
			return Response{}, err
		}
		return Response{Metric: res}, nil

	case KindCompare:
		values, err := metrics.Compare(st, req.Sprints, req.Metric, req.Params)
		if err != nil {
			return Response{}, err
		}
		return Response{Comparison: values, Ranking: metrics.Rank(values)}, nil

	case KindTrend:
		values, err := metrics.Compare(st, req.Sprints, req.Metric, req.Params)
		if err != nil {
			return Response{}, err
		}
		series := make([]float64, len(values))
		for i, v := range values {
			series[i] = v.Value
		}
		fit, err := metrics.Trend(series)
		if err != nil {
			return Response{}, err
		}
		return Response{Comparison: values, Trend: fit}, nil

	case KindHealth:
		b, err := health.Score(st, req.Sprint, e.health)
		if err != nil {
			return Response{}, err
		}
		return Response{Health: b}, nil

	case KindDistribution:
		v, err := query.Apply(view, req.Predicate)
		if err != nil {
			return Response{}, err
		}
		d, err := health.WorkDistribution(v)
		if err != nil {
			return Response{}, err
		}
		return Response{Distribution: d}, nil

	default:
		return Response{}, query.Errorf(string(req.Kind), "unknown request kind")
	}
}
