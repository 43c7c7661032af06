package ticket

import "fmt"

// View is an order-preserving subset of the snapshot. Views share the
// underlying ticket values and never mutate them.
type View []Ticket

// Where returns the tickets satisfying keep, preserving order.
func (v View) Where(keep func(Ticket) bool) View {
	var out View
	for _, t := range v {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of tickets satisfying keep.
func (v View) Count(keep func(Ticket) bool) int {
	n := 0
	for _, t := range v {
		if keep(t) {
			n++
		}
	}
	return n
}

// Store is an immutable, validated snapshot of the ticket collection.
// All reads are safe under concurrent access because nothing mutates a
// store after Load returns it.
type Store struct {
	tickets []Ticket
	sprints []string // first-occurrence order
	byID    map[string]int
}

// Load validates records and builds a snapshot. It fails with a
// *DataError listing every invalid row: a required field missing, a
// value outside its enumeration, negative points or hours, a completed
// date before the created date, or a carried_over_from cycle.
func Load(records []Ticket) (*Store, error) {
	var bad []RowError
	invalid := func(row int, id, format string, args ...any) {
		bad = append(bad, RowError{Row: row, ID: id, Reason: fmt.Sprintf(format, args...)})
	}

	byID := make(map[string]int, len(records))
	for i, t := range records {
		switch {
		case t.ID == "":
			invalid(i, "", "ticket_id is required")
		default:
			if prev, dup := byID[t.ID]; dup {
				invalid(i, t.ID, "duplicate ticket_id (already used at row %d)", prev)
			} else {
				byID[t.ID] = i
			}
		}
		if t.SprintID == "" {
			invalid(i, t.ID, "sprint_id is required")
		}
		if !validType(t.Type) {
			invalid(i, t.ID, "invalid type %q", t.Type)
		}
		if !validStatus(t.Status) {
			invalid(i, t.ID, "invalid status %q", t.Status)
		}
		if !validPriority(t.Priority) {
			invalid(i, t.ID, "invalid priority %q", t.Priority)
		}
		if t.StoryPoints < 0 {
			invalid(i, t.ID, "story_points must be >= 0, got %v", t.StoryPoints)
		}
		if t.DevHours < 0 || t.QAHours < 0 {
			invalid(i, t.ID, "hours must be >= 0")
		}
		if t.Severity != "" {
			if t.Type != TypeBug {
				invalid(i, t.ID, "severity is only valid on bugs, got %q on %s", t.Severity, t.Type)
			} else if !validSeverity(t.Severity) {
				invalid(i, t.ID, "invalid severity %q", t.Severity)
			}
		}
		if !t.CompletedDate.IsZero() {
			if t.Status != StatusDone {
				invalid(i, t.ID, "completed_date set on non-Done ticket (status %s)", t.Status)
			}
			if !t.CreatedDate.IsZero() && t.CompletedDate.Before(t.CreatedDate) {
				invalid(i, t.ID, "completed_date precedes created_date")
			}
		}
		if t.CarriedOverFrom != "" && t.CarriedOverFrom == t.SprintID {
			invalid(i, t.ID, "carried_over_from equals its own sprint %q", t.SprintID)
		}
	}

	bad = append(bad, spilloverCycles(records)...)

	if len(bad) > 0 {
		return nil, &DataError{Rows: bad}
	}

	tickets := make([]Ticket, len(records))
	copy(tickets, records)

	var sprints []string
	seen := make(map[string]bool)
	for _, t := range tickets {
		if !seen[t.SprintID] {
			seen[t.SprintID] = true
			sprints = append(sprints, t.SprintID)
		}
	}

	return &Store{tickets: tickets, sprints: sprints, byID: byID}, nil
}

// spilloverCycles checks that carried_over_from edges between sprints
// form an acyclic graph. A ticket spilling from P into S creates the
// edge P -> S; a cycle would mean a sprint eventually spills back into
// itself, which has no valid timeline.
func spilloverCycles(records []Ticket) []RowError {
	edges := make(map[string]map[string]bool) // from -> set of to
	firstRow := make(map[string]int)          // edge origin row, for reporting
	for i, t := range records {
		if t.CarriedOverFrom == "" || t.CarriedOverFrom == t.SprintID {
			continue
		}
		if edges[t.CarriedOverFrom] == nil {
			edges[t.CarriedOverFrom] = make(map[string]bool)
		}
		if !edges[t.CarriedOverFrom][t.SprintID] {
			edges[t.CarriedOverFrom][t.SprintID] = true
			firstRow[t.CarriedOverFrom+"\x00"+t.SprintID] = i
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)
	var bad []RowError

	var visit func(node string) bool
	visit = func(node string) bool {
		state[node] = visiting
		for next := range edges[node] {
			switch state[next] {
			case visiting:
				row := firstRow[node+"\x00"+next]
				bad = append(bad, RowError{
					Row:    row,
					ID:     records[row].ID,
					Reason: fmt.Sprintf("carried_over_from cycle between sprints %q and %q", next, node),
				})
				return false
			case unvisited:
				if !visit(next) {
					return false
				}
			}
		}
		state[node] = done
		return true
	}

	for node := range edges {
		if state[node] == unvisited {
			if !visit(node) {
				break
			}
		}
	}
	return bad
}

// All returns the full snapshot as a view.
func (s *Store) All() View {
	return View(s.tickets)
}

// Len returns the number of tickets loaded.
func (s *Store) Len() int {
	return len(s.tickets)
}

// Sprints returns every sprint id referenced by at least one ticket,
// in first-occurrence order.
func (s *Store) Sprints() []string {
	return s.sprints
}

// HasSprint reports whether any ticket references the sprint.
func (s *Store) HasSprint(id string) bool {
	for _, sp := range s.sprints {
		if sp == id {
			return true
		}
	}
	return false
}

// BySprint returns the tickets of one sprint. A sprint exists exactly
// when a ticket references it, so an unknown id is a *NotFoundError
// rather than an empty view.
func (s *Store) BySprint(id string) (View, error) {
	v := s.All().Where(func(t Ticket) bool { return t.SprintID == id })
	if len(v) == 0 {
		return nil, &NotFoundError{Kind: "sprint", Name: id}
	}
	return v, nil
}

// ByAssignee returns the tickets owned by one assignee.
func (s *Store) ByAssignee(name string) (View, error) {
	v := s.All().Where(func(t Ticket) bool { return t.Assignee == name })
	if len(v) == 0 {
		return nil, &NotFoundError{Kind: "assignee", Name: name}
	}
	return v, nil
}

// Get returns a single ticket by id.
func (s *Store) Get(id string) (Ticket, error) {
	if i, ok := s.byID[id]; ok {
		return s.tickets[i], nil
	}
	return Ticket{}, &NotFoundError{Kind: "ticket", Name: id}
}
