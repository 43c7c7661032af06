package loader

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/imkarma/pulse/internal/ticket"
)

// ReadSQLite loads ticket records from a SQLite database exported by
// the tracking tool. Expects a tickets table mirroring the CSV
// columns; dates are stored as text.
func ReadSQLite(path string) ([]ticket.Ticket, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT ticket_id, sprint_id, type, status, priority,
		       assignee, assignee_role, story_points,
		       dev_time_hours, qa_time_hours, area_module, severity,
		       created_date, completed_date, carried_over_from, comments
		FROM tickets
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	var records []ticket.Ticket
	var bad []ticket.RowError
	i := 0
	for rows.Next() {
		var t ticket.Ticket
		var assignee, role, area, severity, carried, comments sql.NullString
		var created, completed sql.NullString
		var points, devHours, qaHours sql.NullFloat64

		err := rows.Scan(
			&t.ID, &t.SprintID, &t.Type, &t.Status, &t.Priority,
			&assignee, &role, &points, &devHours, &qaHours,
			&area, &severity, &created, &completed, &carried, &comments,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}

		t.Assignee = assignee.String
		t.Role = role.String
		t.Area = area.String
		t.Severity = ticket.Severity(severity.String)
		t.CarriedOverFrom = carried.String
		t.Comments = comments.String
		t.StoryPoints = points.Float64
		t.DevHours = devHours.Float64
		t.QAHours = qaHours.Float64

		if t.CreatedDate, err = parseDate(created.String); err != nil {
			bad = append(bad, ticket.RowError{Row: i, ID: t.ID, Reason: fmt.Sprintf("created_date: %v", err)})
		}
		if t.CompletedDate, err = parseDate(completed.String); err != nil {
			bad = append(bad, ticket.RowError{Row: i, ID: t.ID, Reason: fmt.Sprintf("completed_date: %v", err)})
		}

		records = append(records, t)
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}

	if len(bad) > 0 {
		return nil, &ticket.DataError{Rows: bad}
	}
	return records, nil
}
