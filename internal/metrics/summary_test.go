package metrics

import (
	"testing"

	"github.com/imkarma/pulse/internal/ticket"
)

func TestSummarizeSprint(t *testing.T) {
	st := sprintStore(t)
	s, err := SummarizeSprint(st, "SPR-002")
	if err != nil {
		t.Fatalf("SummarizeSprint: %v", err)
	}
	if s.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", s.TotalItems)
	}
	if s.ByType[ticket.TypeBug] != 2 || s.ByType[ticket.TypeStory] != 1 {
		t.Errorf("unexpected type counts: %v", s.ByType)
	}
	if s.ByStatus[ticket.StatusDone] != 2 {
		t.Errorf("expected 2 done, got %v", s.ByStatus)
	}
	if s.PlannedPoints != 10 || s.CompletedPoints != 7 {
		t.Errorf("expected 10 planned / 7 completed, got %v / %v", s.PlannedPoints, s.CompletedPoints)
	}
	if s.Spillovers != 1 {
		t.Errorf("expected 1 spillover, got %d", s.Spillovers)
	}
}

func TestTeamPerformance_SortedByCompletedPoints(t *testing.T) {
	st := sprintStore(t)
	v, err := st.BySprint("SPR-001")
	if err != nil {
		t.Fatalf("BySprint: %v", err)
	}
	team := TeamPerformance(v)
	if len(team) != 2 {
		t.Fatalf("expected 2 members, got %d", len(team))
	}
	// ben completed 12 points, ana 8.
	if team[0].Assignee != "ben" || team[0].CompletedPoints != 12 {
		t.Errorf("unexpected leader: %+v", team[0])
	}
	if team[1].Assignee != "ana" || team[1].TotalTickets != 2 {
		t.Errorf("unexpected second member: %+v", team[1])
	}
	if team[1].TotalHours != 19 {
		t.Errorf("expected ana at 19 hours, got %v", team[1].TotalHours)
	}
}

func TestAnalyzeBugs(t *testing.T) {
	st := sprintStore(t)
	v, err := st.BySprint("SPR-002")
	if err != nil {
		t.Fatalf("BySprint: %v", err)
	}
	b := AnalyzeBugs(v)
	if b.Total != 2 || b.Open != 1 || b.Closed != 1 {
		t.Errorf("unexpected counts: %+v", b)
	}
	if b.Critical != 1 {
		t.Errorf("expected 1 critical-priority bug, got %d", b.Critical)
	}
	if b.BySeverity[ticket.SeverityHigh] != 1 || b.BySeverity[ticket.SeverityCritical] != 1 {
		t.Errorf("unexpected severity counts: %v", b.BySeverity)
	}
	if b.ByArea["checkout"] != 2 {
		t.Errorf("unexpected area counts: %v", b.ByArea)
	}
	if b.AvgFixDays != 2 {
		t.Errorf("expected 2 fix days, got %v", b.AvgFixDays)
	}
	if b.Resolution.Undefined || b.Resolution.Value != 0.5 {
		t.Errorf("unexpected resolution: %+v", b.Resolution)
	}
}

func TestAnalyzeBugs_NoBugs(t *testing.T) {
	st := sprintStore(t)
	v, err := st.BySprint("SPR-003")
	if err != nil {
		t.Fatalf("BySprint: %v", err)
	}
	b := AnalyzeBugs(v)
	if b.Total != 0 {
		t.Errorf("expected no bugs, got %d", b.Total)
	}
	if !b.Resolution.Undefined {
		t.Errorf("expected undefined resolution, got %+v", b.Resolution)
	}
}
