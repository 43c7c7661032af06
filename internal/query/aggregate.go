package query

import (
	"math"
	"sort"
	"strings"

	"github.com/imkarma/pulse/internal/ticket"
)

// Agg names a reduction over a numeric column.
type Agg string

const (
	AggSum    Agg = "sum"
	AggMean   Agg = "mean"
	AggMedian Agg = "median"
	AggCount  Agg = "count"
	AggStd    Agg = "std"
	AggMin    Agg = "min"
	AggMax    Agg = "max"
)

// Group is one bucket of a grouped view: the dimension values that key
// it plus the sub-view of tickets in the bucket.
type Group struct {
	Key  []string // one value per requested dimension
	View ticket.View
}

// Label joins the key values for display.
func (g Group) Label() string {
	return strings.Join(g.Key, " / ")
}

// Grouped is the result of GroupBy, in first-occurrence order of each
// composite key.
type Grouped struct {
	Dimensions []string
	Groups     []Group
}

// GroupBy partitions the view by one or more dimension fields. The
// dimensions must be text fields; grouping by a numeric or date column
// is a query error.
func GroupBy(v ticket.View, dimensions []string) (*Grouped, error) {
	if len(dimensions) == 0 {
		return nil, Errorf("", "group by needs at least one dimension")
	}
	specs := make([]ticket.FieldSpec, len(dimensions))
	for i, d := range dimensions {
		spec, ok := ticket.Fields[d]
		if !ok {
			return nil, Errorf(d, "unknown dimension %q", d)
		}
		if spec.Kind != ticket.FieldString && spec.Kind != ticket.FieldEnum {
			return nil, Errorf(d, "cannot group by non-text field %q", d)
		}
		specs[i] = spec
	}

	index := make(map[string]int)
	out := &Grouped{Dimensions: dimensions}
	for _, t := range v {
		key := make([]string, len(specs))
		for i, spec := range specs {
			key[i] = spec.String(t)
		}
		composite := strings.Join(key, "\x00")
		gi, seen := index[composite]
		if !seen {
			gi = len(out.Groups)
			index[composite] = gi
			out.Groups = append(out.Groups, Group{Key: key})
		}
		out.Groups[gi].View = append(out.Groups[gi].View, t)
	}
	return out, nil
}

// Reduce collapses a numeric column of the view to a single value.
// Empty-view policy: count and sum are naturally 0; mean, median, and
// std also return 0 rather than erroring, so callers distinguish "no
// data" from a rejected request. std is the sample (n-1) deviation and
// is 0 when fewer than two values exist.
func Reduce(v ticket.View, column string, agg Agg) (float64, error) {
	spec, ok := ticket.Fields[column]
	if !ok {
		return 0, Errorf(column, "unknown column %q", column)
	}
	if agg == AggCount {
		return float64(len(v)), nil
	}
	if spec.Kind != ticket.FieldNumber {
		return 0, Errorf(column, "cannot aggregate non-numeric column %q", column)
	}

	values := make([]float64, len(v))
	for i, t := range v {
		values[i] = spec.Number(t)
	}

	switch agg {
	case AggSum:
		return sum(values), nil
	case AggMean:
		return mean(values), nil
	case AggMedian:
		return median(values), nil
	case AggStd:
		return sampleStd(values), nil
	case AggMin:
		if len(values) == 0 {
			return 0, nil
		}
		m := values[0]
		for _, x := range values[1:] {
			m = math.Min(m, x)
		}
		return m, nil
	case AggMax:
		if len(values) == 0 {
			return 0, nil
		}
		m := values[0]
		for _, x := range values[1:] {
			m = math.Max(m, x)
		}
		return m, nil
	default:
		return 0, Errorf(column, "unknown aggregator %q", agg)
	}
}

func sum(values []float64) float64 {
	s := 0.0
	for _, x := range values {
		s += x
	}
	return s
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// sampleStd is the n-1 standard deviation, 0 when n < 2.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	ss := 0.0
	for _, x := range values {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
