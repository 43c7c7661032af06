package query

import (
	"math"
	"testing"

	"github.com/imkarma/pulse/internal/ticket"
)

func TestGroupBy_FirstOccurrenceOrder(t *testing.T) {
	v := testView(t)
	g, err := GroupBy(v, []string{"sprint_id"})
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	if len(g.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(g.Groups))
	}
	if g.Groups[0].Key[0] != "SPR-001" || g.Groups[1].Key[0] != "SPR-002" {
		t.Errorf("expected first-occurrence order, got %v then %v", g.Groups[0].Key, g.Groups[1].Key)
	}
}

func TestGroupBy_CompositeKey(t *testing.T) {
	v := testView(t)
	g, err := GroupBy(v, []string{"sprint_id", "assignee"})
	if err != nil {
		t.Fatalf("GroupBy: %v", err)
	}
	// (SPR-001, ana), (SPR-001, ben), (SPR-002, ana)
	if len(g.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(g.Groups))
	}
}

func TestGroupBy_BadDimension(t *testing.T) {
	v := testView(t)
	if _, err := GroupBy(v, []string{"story_points"}); err == nil {
		t.Error("expected error grouping by a numeric column")
	}
	if _, err := GroupBy(v, []string{"nope"}); err == nil {
		t.Error("expected error for unknown dimension")
	}
	if _, err := GroupBy(v, nil); err == nil {
		t.Error("expected error for no dimensions")
	}
}

// Partition invariant: group sums add up to the whole-view sum.
func TestGroupBy_SumIsDistributive(t *testing.T) {
	v := testView(t)
	total, err := Reduce(v, "story_points", AggSum)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	for _, dim := range []string{"sprint_id", "assignee", "type", "status"} {
		g, err := GroupBy(v, []string{dim})
		if err != nil {
			t.Fatalf("GroupBy %s: %v", dim, err)
		}
		partSum := 0.0
		partCount := 0.0
		for _, grp := range g.Groups {
			s, err := Reduce(grp.View, "story_points", AggSum)
			if err != nil {
				t.Fatalf("Reduce group: %v", err)
			}
			c, _ := Reduce(grp.View, "story_points", AggCount)
			partSum += s
			partCount += c
		}
		if partSum != total {
			t.Errorf("%s: group sums %v != view sum %v", dim, partSum, total)
		}
		if int(partCount) != len(v) {
			t.Errorf("%s: group counts %v != view size %d", dim, partCount, len(v))
		}
	}
}

func TestReduce(t *testing.T) {
	v := testView(t) // points: 5, 3, 8
	cases := []struct {
		agg  Agg
		want float64
	}{
		{AggSum, 16},
		{AggMean, 16.0 / 3},
		{AggMedian, 5},
		{AggCount, 3},
		{AggMin, 3},
		{AggMax, 8},
	}
	for _, tc := range cases {
		got, err := Reduce(v, "story_points", tc.agg)
		if err != nil {
			t.Fatalf("%s: %v", tc.agg, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tc.agg, tc.want, got)
		}
	}
}

func TestReduce_SampleStd(t *testing.T) {
	v := testView(t) // points: 5, 3, 8 -> sample std
	got, err := Reduce(v, "story_points", AggStd)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	// mean 16/3, sum of squared deviations = 12.666..., /(n-1) = 6.333...
	want := math.Sqrt(19.0 / 3)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestReduce_EmptyViewPolicy(t *testing.T) {
	var empty ticket.View
	for _, agg := range []Agg{AggSum, AggMean, AggMedian, AggCount, AggStd, AggMin, AggMax} {
		got, err := Reduce(empty, "story_points", agg)
		if err != nil {
			t.Fatalf("%s on empty view: %v", agg, err)
		}
		if got != 0 {
			t.Errorf("%s on empty view: expected 0, got %v", agg, got)
		}
	}
}

func TestReduce_SingleValueStdIsZero(t *testing.T) {
	v := testView(t)[:1]
	got, err := Reduce(v, "story_points", AggStd)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 0 {
		t.Errorf("std of a single value should be 0, got %v", got)
	}
}

func TestReduce_BadColumn(t *testing.T) {
	v := testView(t)
	if _, err := Reduce(v, "status", AggSum); err == nil {
		t.Error("expected error summing a text column")
	}
	if _, err := Reduce(v, "nope", AggSum); err == nil {
		t.Error("expected error for unknown column")
	}
	if _, err := Reduce(v, "story_points", Agg("avg")); err == nil {
		t.Error("expected error for unknown aggregator")
	}
}
