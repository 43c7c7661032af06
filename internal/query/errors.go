// Package query evaluates declarative filter predicates and grouped
// aggregations over ticket views.
package query

import "fmt"

// Error reports a malformed filter, aggregation, or trend request.
// Always recoverable: the caller can correct the request and retry.
type Error struct {
	Clause string // offending clause or argument, for the caller's message
	Reason string
}

func (e *Error) Error() string {
	if e.Clause == "" {
		return "bad query: " + e.Reason
	}
	return fmt.Sprintf("bad query: clause %s: %s", e.Clause, e.Reason)
}

// Errorf builds an *Error for the given clause.
func Errorf(clause, format string, args ...any) *Error {
	return &Error{Clause: clause, Reason: fmt.Sprintf(format, args...)}
}
