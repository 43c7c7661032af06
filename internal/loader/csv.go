package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/imkarma/pulse/internal/ticket"
)

// Column names recognized in the CSV header. Matching is
// case-insensitive; only Ticket_ID and Sprint_ID columns are
// structurally required, everything else defaults to its zero value.
const (
	colTicketID    = "ticket_id"
	colSprintID    = "sprint_id"
	colType        = "type"
	colStatus      = "status"
	colPriority    = "priority"
	colAssignee    = "assignee"
	colRole        = "assignee_role"
	colStoryPoints = "story_points"
	colDevHours    = "dev_time_hours"
	colQAHours     = "qa_time_hours"
	colArea        = "area_module"
	colSeverity    = "severity"
	colCreated     = "created_date"
	colCompleted   = "completed_date"
	colCarriedFrom = "carried_over_from"
	colComments    = "comments"
)

// ReadCSV parses a headered CSV export into raw ticket records. Cell
// parse failures are collected per row and returned together as a
// *ticket.DataError.
func ReadCSV(path string) ([]ticket.Ticket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colTicketID, colSprintID} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", required)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}

	var records []ticket.Ticket
	var bad []ticket.RowError
	for i, row := range rows {
		cell := func(name string) string {
			if idx, ok := col[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		t := ticket.Ticket{
			ID:              cell(colTicketID),
			SprintID:        cell(colSprintID),
			Type:            ticket.Type(cell(colType)),
			Status:          ticket.Status(cell(colStatus)),
			Priority:        ticket.Priority(cell(colPriority)),
			Assignee:        cell(colAssignee),
			Role:            cell(colRole),
			Area:            cell(colArea),
			Severity:        ticket.Severity(cell(colSeverity)),
			CarriedOverFrom: cell(colCarriedFrom),
			Comments:        cell(colComments),
		}

		rowErr := func(format string, args ...any) {
			bad = append(bad, ticket.RowError{Row: i, ID: t.ID, Reason: fmt.Sprintf(format, args...)})
		}

		var parseErr error
		if t.StoryPoints, parseErr = parseNumber(cell(colStoryPoints)); parseErr != nil {
			rowErr("story_points: %v", parseErr)
		}
		if t.DevHours, parseErr = parseNumber(cell(colDevHours)); parseErr != nil {
			rowErr("dev_time_hours: %v", parseErr)
		}
		if t.QAHours, parseErr = parseNumber(cell(colQAHours)); parseErr != nil {
			rowErr("qa_time_hours: %v", parseErr)
		}
		if t.CreatedDate, parseErr = parseDate(cell(colCreated)); parseErr != nil {
			rowErr("created_date: %v", parseErr)
		}
		if t.CompletedDate, parseErr = parseDate(cell(colCompleted)); parseErr != nil {
			rowErr("completed_date: %v", parseErr)
		}

		records = append(records, t)
	}

	if len(bad) > 0 {
		return nil, &ticket.DataError{Rows: bad}
	}
	return records, nil
}

// parseNumber reads a numeric cell; empty cells mean 0.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}
