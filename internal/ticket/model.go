// Package ticket defines the immutable ticket data model and the
// validated in-memory snapshot store the analysis engine runs against.
package ticket

import "time"

// Type classifies a ticket by the kind of work it represents.
type Type string

const (
	TypeStory Type = "Story"
	TypeBug   Type = "Bug"
	TypeTask  Type = "Task"
	TypeSpike Type = "Spike"
)

// Status is the board state of a ticket.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusInTesting  Status = "In Testing"
	StatusDone       Status = "Done"
	StatusBlocked    Status = "Blocked"
)

// Priority is the business urgency of a ticket.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Severity applies to bugs only; non-bug tickets carry no severity.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Ticket is one row of the snapshot. Tickets are never mutated after
// load; a reload builds a whole new snapshot.
type Ticket struct {
	ID              string    `json:"ticket_id"`
	SprintID        string    `json:"sprint_id"`
	Type            Type      `json:"type"`
	Status          Status    `json:"status"`
	Priority        Priority  `json:"priority"`
	Assignee        string    `json:"assignee,omitempty"`
	Role            string    `json:"role,omitempty"`
	StoryPoints     float64   `json:"story_points"`
	DevHours        float64   `json:"dev_hours"`
	QAHours         float64   `json:"qa_hours"`
	Area            string    `json:"area,omitempty"`
	Severity        Severity  `json:"severity,omitempty"` // bugs only
	CreatedDate     time.Time `json:"created_date"`
	CompletedDate   time.Time `json:"completed_date,omitzero"`     // set only when Done
	CarriedOverFrom string    `json:"carried_over_from,omitempty"` // sprint the ticket spilled from
	Comments        string    `json:"comments,omitempty"`
}

// Done reports whether the ticket reached the Done status.
func (t Ticket) Done() bool {
	return t.Status == StatusDone
}

// CycleTime returns the whole days between creation and completion.
// The second return is false when either date is missing.
func (t Ticket) CycleTime() (int, bool) {
	if !t.Done() || t.CreatedDate.IsZero() || t.CompletedDate.IsZero() {
		return 0, false
	}
	return int(t.CompletedDate.Sub(t.CreatedDate).Hours() / 24), true
}

// Spillover reports whether the ticket was carried over from an
// earlier sprint.
func (t Ticket) Spillover() bool {
	return t.CarriedOverFrom != ""
}

func validType(v Type) bool {
	switch v {
	case TypeStory, TypeBug, TypeTask, TypeSpike:
		return true
	}
	return false
}

func validStatus(v Status) bool {
	switch v {
	case StatusToDo, StatusInProgress, StatusInTesting, StatusDone, StatusBlocked:
		return true
	}
	return false
}

func validPriority(v Priority) bool {
	switch v {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func validSeverity(v Severity) bool {
	switch v {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
