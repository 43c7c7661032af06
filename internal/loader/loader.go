// Package loader reads raw ticket rows from CSV files or SQLite
// databases and hands them to the ticket store for validation.
package loader

import (
	"fmt"
	"strings"
	"time"

	"github.com/imkarma/pulse/internal/ticket"
)

// Read loads records from path. Format is "csv" or "sqlite"; rows that
// fail to parse are reported together in one *ticket.DataError so a
// bad file never yields a partial dataset.
func Read(path, format string) ([]ticket.Ticket, error) {
	switch format {
	case "csv":
		return ReadCSV(path)
	case "sqlite":
		return ReadSQLite(path)
	default:
		return nil, fmt.Errorf("unknown data format %q", format)
	}
}

// dateFormats are tried in order when parsing date cells.
var dateFormats = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
