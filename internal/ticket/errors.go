package ticket

import (
	"fmt"
	"strings"
)

// RowError describes one invalid record encountered during a load.
type RowError struct {
	Row    int    // zero-based index into the input records
	ID     string // ticket id if one was present
	Reason string
}

func (e RowError) String() string {
	if e.ID != "" {
		return fmt.Sprintf("row %d (%s): %s", e.Row, e.ID, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// DataError reports malformed or inconsistent input at load time.
// The whole load fails; a previously installed snapshot is untouched.
type DataError struct {
	Rows []RowError
}

func (e *DataError) Error() string {
	if len(e.Rows) == 1 {
		return "invalid ticket data: " + e.Rows[0].String()
	}
	lines := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		lines[i] = "  " + r.String()
	}
	return fmt.Sprintf("invalid ticket data (%d rows):\n%s", len(e.Rows), strings.Join(lines, "\n"))
}

// NotFoundError reports a referenced sprint, assignee, or ticket that
// does not exist in the snapshot.
type NotFoundError struct {
	Kind string // "sprint", "assignee", "ticket"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
