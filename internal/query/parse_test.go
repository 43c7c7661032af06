package query

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParsePredicate(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want Predicate
	}{
		{"empty", "", nil},
		{"single equality", "status = Done",
			Predicate{{Field: "status", Op: OpEq, Value: "Done"}}},
		{"no spaces around op", "story_points>=5",
			Predicate{{Field: "story_points", Op: OpGte, Value: 5.0}}},
		{"conjunction", "assignee = ana and story_points > 3",
			Predicate{
				{Field: "assignee", Op: OpEq, Value: "ana"},
				{Field: "story_points", Op: OpGt, Value: 3.0},
			}},
		{"in set", "type in Bug|Story",
			Predicate{{Field: "type", Op: OpIn, Value: []string{"Bug", "Story"}}}},
		{"numeric in set", "story_points in 3|5|8",
			Predicate{{Field: "story_points", Op: OpIn, Value: []float64{3, 5, 8}}}},
		{"contains", "comments contains blocked",
			Predicate{{Field: "comments", Op: OpContains, Value: "blocked"}}},
		{"date literal", "created_date >= 2025-03-01",
			Predicate{{Field: "created_date", Op: OpGte,
				Value: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}}},
		{"not equal", "status != Done",
			Predicate{{Field: "status", Op: OpNeq, Value: "Done"}}},
	}
	for _, tc := range cases {
		got, err := ParsePredicate(tc.expr)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestParsePredicate_Errors(t *testing.T) {
	cases := []struct {
		name string
		expr string
	}{
		{"unknown field", "estimate = 5"},
		{"bad number", "story_points = five"},
		{"bad date", "created_date = yesterday"},
		{"bad number in set", "story_points in 3|five"},
		{"no operator", "status Done"},
	}
	for _, tc := range cases {
		if _, err := ParsePredicate(tc.expr); err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.expr)
		}
	}
}
