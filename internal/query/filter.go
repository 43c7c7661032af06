package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/imkarma/pulse/internal/ticket"
)

// Op is a clause comparison operator.
type Op string

const (
	OpEq       Op = "="
	OpNeq      Op = "!="
	OpGt       Op = ">"
	OpGte      Op = ">="
	OpLt       Op = "<"
	OpLte      Op = "<="
	OpIn       Op = "in"
	OpContains Op = "contains"
)

// Clause compares one ticket field against a literal. Value must be a
// string, float64, or time.Time; the in operator takes a []string or
// []float64.
type Clause struct {
	Field string
	Op    Op
	Value any
}

func (c Clause) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// Predicate is a conjunction of clauses: a ticket matches when every
// clause holds.
type Predicate []Clause

// Apply evaluates the predicate against every ticket in the view and
// returns the matching subset in the original order. An empty
// predicate returns the view unchanged. Applying the same predicate to
// its own output is a no-op.
func Apply(v ticket.View, pred Predicate) (ticket.View, error) {
	if len(pred) == 0 {
		return v, nil
	}
	matchers := make([]func(ticket.Ticket) bool, len(pred))
	for i, c := range pred {
		m, err := c.matcher()
		if err != nil {
			return nil, err
		}
		matchers[i] = m
	}
	return v.Where(func(t ticket.Ticket) bool {
		for _, m := range matchers {
			if !m(t) {
				return false
			}
		}
		return true
	}), nil
}

// matcher type-checks the clause against the field table and returns
// the per-ticket evaluation func. Mismatches (ordering on an enum,
// string literal against a numeric field) are query errors naming the
// clause.
func (c Clause) matcher() (func(ticket.Ticket) bool, error) {
	spec, ok := ticket.Fields[c.Field]
	if !ok {
		return nil, Errorf(c.String(), "unknown field %q", c.Field)
	}

	switch spec.Kind {
	case ticket.FieldNumber:
		return c.numberMatcher(spec)
	case ticket.FieldDate:
		return c.dateMatcher(spec)
	default:
		return c.stringMatcher(spec)
	}
}

func (c Clause) numberMatcher(spec ticket.FieldSpec) (func(ticket.Ticket) bool, error) {
	if c.Op == OpIn {
		vals, ok := c.Value.([]float64)
		if !ok {
			return nil, Errorf(c.String(), "in on numeric field %q needs a number set", c.Field)
		}
		return func(t ticket.Ticket) bool {
			got := spec.Number(t)
			for _, want := range vals {
				if got == want {
					return true
				}
			}
			return false
		}, nil
	}
	if c.Op == OpContains {
		return nil, Errorf(c.String(), "contains is not valid on numeric field %q", c.Field)
	}
	want, ok := c.Value.(float64)
	if !ok {
		return nil, Errorf(c.String(), "field %q is numeric, got literal %T", c.Field, c.Value)
	}
	cmp, err := c.ordering()
	if err != nil {
		return nil, err
	}
	return func(t ticket.Ticket) bool { return cmp(compareFloat(spec.Number(t), want)) }, nil
}

func (c Clause) dateMatcher(spec ticket.FieldSpec) (func(ticket.Ticket) bool, error) {
	if c.Op == OpIn || c.Op == OpContains {
		return nil, Errorf(c.String(), "%s is not valid on date field %q", c.Op, c.Field)
	}
	want, ok := c.Value.(time.Time)
	if !ok {
		return nil, Errorf(c.String(), "field %q is a date, got literal %T", c.Field, c.Value)
	}
	cmp, err := c.ordering()
	if err != nil {
		return nil, err
	}
	return func(t ticket.Ticket) bool {
		got := spec.Date(t)
		return cmp(got.Compare(want))
	}, nil
}

func (c Clause) stringMatcher(spec ticket.FieldSpec) (func(ticket.Ticket) bool, error) {
	switch c.Op {
	case OpEq, OpNeq:
		want, ok := c.Value.(string)
		if !ok {
			return nil, Errorf(c.String(), "field %q is text, got literal %T", c.Field, c.Value)
		}
		if c.Op == OpEq {
			return func(t ticket.Ticket) bool { return spec.String(t) == want }, nil
		}
		return func(t ticket.Ticket) bool { return spec.String(t) != want }, nil
	case OpIn:
		vals, ok := c.Value.([]string)
		if !ok {
			return nil, Errorf(c.String(), "in on field %q needs a string set", c.Field)
		}
		return func(t ticket.Ticket) bool {
			got := spec.String(t)
			for _, want := range vals {
				if got == want {
					return true
				}
			}
			return false
		}, nil
	case OpContains:
		if spec.Kind != ticket.FieldString {
			return nil, Errorf(c.String(), "contains is only valid on free-text fields, %q is an enum", c.Field)
		}
		want, ok := c.Value.(string)
		if !ok {
			return nil, Errorf(c.String(), "contains needs a string literal, got %T", c.Value)
		}
		return func(t ticket.Ticket) bool {
			return strings.Contains(strings.ToLower(spec.String(t)), strings.ToLower(want))
		}, nil
	default:
		return nil, Errorf(c.String(), "%s is not valid on text field %q", c.Op, c.Field)
	}
}

// ordering maps an operator to a check over a three-way comparison
// result (-1, 0, +1).
func (c Clause) ordering() (func(int) bool, error) {
	switch c.Op {
	case OpEq:
		return func(r int) bool { return r == 0 }, nil
	case OpNeq:
		return func(r int) bool { return r != 0 }, nil
	case OpGt:
		return func(r int) bool { return r > 0 }, nil
	case OpGte:
		return func(r int) bool { return r >= 0 }, nil
	case OpLt:
		return func(r int) bool { return r < 0 }, nil
	case OpLte:
		return func(r int) bool { return r <= 0 }, nil
	default:
		return nil, Errorf(c.String(), "unsupported operator %q", c.Op)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
