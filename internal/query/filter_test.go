package query

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/imkarma/pulse/internal/ticket"
)

// testView builds a small mixed view for filter tests.
func testView(t *testing.T) ticket.View {
	t.Helper()
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tickets := []ticket.Ticket{
		{ID: "T-1", SprintID: "SPR-001", Type: ticket.TypeStory, Status: ticket.StatusDone,
			Priority: ticket.PriorityHigh, Assignee: "ana", StoryPoints: 5,
			CreatedDate: created, CompletedDate: created.AddDate(0, 0, 3)},
		{ID: "T-2", SprintID: "SPR-001", Type: ticket.TypeBug, Status: ticket.StatusToDo,
			Priority: ticket.PriorityCritical, Assignee: "ben", StoryPoints: 3,
			Severity: ticket.SeverityHigh, CreatedDate: created,
			Comments: "Blocked on upstream fix"},
		{ID: "T-3", SprintID: "SPR-002", Type: ticket.TypeTask, Status: ticket.StatusInProgress,
			Priority: ticket.PriorityLow, Assignee: "ana", StoryPoints: 8,
			CreatedDate: created.AddDate(0, 0, 5)},
	}
	st, err := ticket.Load(tickets)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return st.All()
}

func ids(v ticket.View) []string {
	out := make([]string, len(v))
	for i, t := range v {
		out[i] = t.ID
	}
	return out
}

func TestApply_EmptyPredicateIsIdentity(t *testing.T) {
	v := testView(t)
	got, err := Apply(v, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff(ids(v), ids(got)); diff != "" {
		t.Errorf("view changed (-want +got):\n%s", diff)
	}
}

func TestApply_Conjunction(t *testing.T) {
	v := testView(t)
	pred := Predicate{
		{Field: "assignee", Op: OpEq, Value: "ana"},
		{Field: "story_points", Op: OpGt, Value: 4.0},
	}
	got, err := Apply(v, pred)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]string{"T-1", "T-3"}, ids(got)); diff != "" {
		t.Errorf("wrong matches (-want +got):\n%s", diff)
	}
}

func TestApply_Idempotent(t *testing.T) {
	v := testView(t)
	pred := Predicate{{Field: "status", Op: OpNeq, Value: "Done"}}

	once, err := Apply(v, pred)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	twice, err := Apply(once, pred)
	if err != nil {
		t.Fatalf("Apply twice: %v", err)
	}
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("applying twice changed the view (-once +twice):\n%s", diff)
	}
}

func TestApply_Operators(t *testing.T) {
	v := testView(t)
	cases := []struct {
		name string
		pred Predicate
		want []string
	}{
		{"gte", Predicate{{Field: "story_points", Op: OpGte, Value: 5.0}}, []string{"T-1", "T-3"}},
		{"lt", Predicate{{Field: "story_points", Op: OpLt, Value: 5.0}}, []string{"T-2"}},
		{"neq", Predicate{{Field: "type", Op: OpNeq, Value: "Bug"}}, []string{"T-1", "T-3"}},
		{"in", Predicate{{Field: "priority", Op: OpIn, Value: []string{"High", "Critical"}}}, []string{"T-1", "T-2"}},
		{"contains", Predicate{{Field: "comments", Op: OpContains, Value: "blocked"}}, []string{"T-2"}},
		{"date", Predicate{{Field: "created_date", Op: OpGt,
			Value: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)}}, []string{"T-3"}},
	}
	for _, tc := range cases {
		got, err := Apply(v, tc.pred)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestApply_TypeMismatches(t *testing.T) {
	v := testView(t)
	cases := []struct {
		name string
		pred Predicate
	}{
		{"ordering on enum", Predicate{{Field: "status", Op: OpGt, Value: "Done"}}},
		{"string literal on number", Predicate{{Field: "story_points", Op: OpEq, Value: "five"}}},
		{"contains on number", Predicate{{Field: "dev_hours", Op: OpContains, Value: "3"}}},
		{"contains on enum", Predicate{{Field: "priority", Op: OpContains, Value: "Hi"}}},
		{"unknown field", Predicate{{Field: "estimate", Op: OpEq, Value: "x"}}},
		{"in without set", Predicate{{Field: "priority", Op: OpIn, Value: "High"}}},
	}
	for _, tc := range cases {
		_, err := Apply(v, tc.pred)
		var qerr *Error
		if !errors.As(err, &qerr) {
			t.Errorf("%s: expected *query.Error, got %v", tc.name, err)
		}
	}
}
