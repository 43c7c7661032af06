package ticket

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// tk builds a minimal valid ticket for tests.
func tk(id, sprint string, typ Type, status Status, points float64) Ticket {
	return Ticket{
		ID:          id,
		SprintID:    sprint,
		Type:        typ,
		Status:      status,
		Priority:    PriorityMedium,
		StoryPoints: points,
		CreatedDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// testStore loads a small two-sprint dataset.
func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load([]Ticket{
		tk("T-1", "SPR-001", TypeStory, StatusDone, 5),
		tk("T-2", "SPR-001", TypeBug, StatusToDo, 3),
		tk("T-3", "SPR-002", TypeTask, StatusInProgress, 2),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoad_Valid(t *testing.T) {
	s := testStore(t)
	if s.Len() != 3 {
		t.Errorf("expected 3 tickets, got %d", s.Len())
	}
	sprints := s.Sprints()
	if len(sprints) != 2 || sprints[0] != "SPR-001" || sprints[1] != "SPR-002" {
		t.Errorf("expected [SPR-001 SPR-002] in data order, got %v", sprints)
	}
}

func TestLoad_CollectsAllInvalidRows(t *testing.T) {
	bad := []Ticket{
		{ID: "", SprintID: "SPR-001", Type: TypeStory, Status: StatusDone, Priority: PriorityLow},
		{ID: "T-2", SprintID: "", Type: TypeStory, Status: StatusDone, Priority: PriorityLow},
		{ID: "T-3", SprintID: "SPR-001", Type: "Feature", Status: StatusDone, Priority: PriorityLow},
	}
	_, err := Load(bad)
	var dataErr *DataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected *DataError, got %v", err)
	}
	if len(dataErr.Rows) != 3 {
		t.Fatalf("expected 3 row errors, got %d: %v", len(dataErr.Rows), dataErr)
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	_, err := Load([]Ticket{
		tk("T-1", "SPR-001", TypeStory, StatusDone, 1),
		tk("T-1", "SPR-002", TypeStory, StatusDone, 1),
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoad_NegativePoints(t *testing.T) {
	bad := tk("T-1", "SPR-001", TypeStory, StatusToDo, -1)
	if _, err := Load([]Ticket{bad}); err == nil {
		t.Fatal("expected error for negative story points")
	}
}

func TestLoad_InvalidEnums(t *testing.T) {
	cases := map[string]Ticket{
		"status":   {ID: "T-1", SprintID: "S", Type: TypeStory, Status: "Shipped", Priority: PriorityLow},
		"priority": {ID: "T-1", SprintID: "S", Type: TypeStory, Status: StatusDone, Priority: "Urgent"},
		"type":     {ID: "T-1", SprintID: "S", Type: "Epic", Status: StatusDone, Priority: PriorityLow},
	}
	for name, bad := range cases {
		if _, err := Load([]Ticket{bad}); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestLoad_SeverityOnlyOnBugs(t *testing.T) {
	bad := tk("T-1", "SPR-001", TypeStory, StatusToDo, 1)
	bad.Severity = SeverityHigh
	if _, err := Load([]Ticket{bad}); err == nil {
		t.Fatal("expected error for severity on a story")
	}

	ok := tk("T-2", "SPR-001", TypeBug, StatusToDo, 1)
	ok.Severity = SeverityHigh
	if _, err := Load([]Ticket{ok}); err != nil {
		t.Fatalf("severity on a bug should be valid: %v", err)
	}
}

func TestLoad_CompletedBeforeCreated(t *testing.T) {
	bad := tk("T-1", "SPR-001", TypeStory, StatusDone, 1)
	bad.CompletedDate = bad.CreatedDate.AddDate(0, 0, -2)
	if _, err := Load([]Ticket{bad}); err == nil {
		t.Fatal("expected error for completed_date before created_date")
	}
}

func TestLoad_CompletedOnNonDone(t *testing.T) {
	bad := tk("T-1", "SPR-001", TypeStory, StatusInProgress, 1)
	bad.CompletedDate = bad.CreatedDate.AddDate(0, 0, 2)
	if _, err := Load([]Ticket{bad}); err == nil {
		t.Fatal("expected error for completed_date on non-Done ticket")
	}
}

func TestLoad_CarryOverIntoOwnSprint(t *testing.T) {
	bad := tk("T-1", "SPR-001", TypeStory, StatusToDo, 1)
	bad.CarriedOverFrom = "SPR-001"
	if _, err := Load([]Ticket{bad}); err == nil {
		t.Fatal("expected error for carried_over_from == sprint_id")
	}
}

func TestLoad_SpilloverCycle(t *testing.T) {
	a := tk("T-1", "SPR-002", TypeStory, StatusToDo, 1)
	a.CarriedOverFrom = "SPR-001" // SPR-001 -> SPR-002
	b := tk("T-2", "SPR-001", TypeStory, StatusToDo, 1)
	b.CarriedOverFrom = "SPR-002" // SPR-002 -> SPR-001: cycle

	_, err := Load([]Ticket{a, b})
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoad_SpilloverChainAcyclic(t *testing.T) {
	a := tk("T-1", "SPR-002", TypeStory, StatusToDo, 1)
	a.CarriedOverFrom = "SPR-001"
	b := tk("T-2", "SPR-003", TypeStory, StatusToDo, 1)
	b.CarriedOverFrom = "SPR-002"

	if _, err := Load([]Ticket{a, b}); err != nil {
		t.Fatalf("a linear spillover chain should load: %v", err)
	}
}

func TestBySprint(t *testing.T) {
	s := testStore(t)

	v, err := s.BySprint("SPR-001")
	if err != nil {
		t.Fatalf("BySprint: %v", err)
	}
	if len(v) != 2 {
		t.Errorf("expected 2 tickets in SPR-001, got %d", len(v))
	}
}

func TestBySprint_NotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.BySprint("SPR-999")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nf.Kind != "sprint" {
		t.Errorf("expected sprint kind, got %q", nf.Kind)
	}
}

func TestByAssignee(t *testing.T) {
	a := tk("T-1", "SPR-001", TypeStory, StatusDone, 5)
	a.Assignee = "ana"
	b := tk("T-2", "SPR-001", TypeBug, StatusToDo, 3)
	b.Assignee = "ben"
	s, err := Load([]Ticket{a, b})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	v, err := s.ByAssignee("ana")
	if err != nil {
		t.Fatalf("ByAssignee: %v", err)
	}
	if len(v) != 1 || v[0].ID != "T-1" {
		t.Errorf("expected T-1 only, got %v", v)
	}

	if _, err := s.ByAssignee("carl"); err == nil {
		t.Error("expected NotFoundError for unknown assignee")
	}
}

func TestCycleTime(t *testing.T) {
	done := tk("T-1", "SPR-001", TypeStory, StatusDone, 1)
	done.CompletedDate = done.CreatedDate.AddDate(0, 0, 4)

	days, ok := done.CycleTime()
	if !ok || days != 4 {
		t.Errorf("expected 4 days, got %d (ok=%v)", days, ok)
	}

	// Done but missing completion date: no cycle time.
	open := tk("T-2", "SPR-001", TypeStory, StatusDone, 1)
	if _, ok := open.CycleTime(); ok {
		t.Error("expected no cycle time without completed_date")
	}
}
