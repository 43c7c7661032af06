package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/imkarma/pulse/internal/ticket"
)

// ParsePredicate turns a textual filter expression into a Predicate.
// Clauses are joined with "and"; each clause is "field op value".
// Values for the in operator are separated by "|", e.g.
//
//	status = Done and story_points >= 3 and type in Bug|Story
//
// Literals are typed by the field: numeric fields parse numbers, date
// fields parse YYYY-MM-DD, everything else stays text.
func ParsePredicate(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var pred Predicate
	for _, raw := range strings.Split(expr, " and ") {
		clause, err := parseClause(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		pred = append(pred, clause)
	}
	return pred, nil
}

// parseOps is ordered longest-first so ">=" wins over ">".
var parseOps = []Op{OpGte, OpLte, OpNeq, OpEq, OpGt, OpLt, OpIn, OpContains}

func parseClause(raw string) (Clause, error) {
	for _, op := range parseOps {
		sep := " " + string(op) + " "
		if op == OpEq || op == OpNeq || op == OpGt || op == OpGte || op == OpLt || op == OpLte {
			// Symbolic operators also work without surrounding spaces.
			if field, val, ok := splitSymbolic(raw, string(op)); ok {
				return typedClause(field, op, val)
			}
			continue
		}
		if i := strings.Index(raw, sep); i > 0 {
			field := strings.TrimSpace(raw[:i])
			val := strings.TrimSpace(raw[i+len(sep):])
			return typedClause(field, op, val)
		}
	}
	return Clause{}, Errorf(raw, "cannot parse clause")
}

// splitSymbolic splits "field>=value" or "field >= value" forms,
// requiring the exact operator (not a longer one starting with it).
func splitSymbolic(raw, op string) (field, val string, ok bool) {
	i := strings.Index(raw, op)
	if i <= 0 {
		return "", "", false
	}
	rest := raw[i+len(op):]
	// Reject "=" matching the front of "==" style typos and ">"
	// matching ">=": the remainder must not start with '='.
	if strings.HasPrefix(rest, "=") {
		return "", "", false
	}
	return strings.TrimSpace(raw[:i]), strings.TrimSpace(rest), true
}

// typedClause converts the textual literal to the field's value type.
func typedClause(field string, op Op, val string) (Clause, error) {
	spec, ok := ticket.Fields[field]
	if !ok {
		return Clause{}, Errorf(field+" "+string(op)+" "+val, "unknown field %q", field)
	}

	if op == OpIn {
		parts := strings.Split(val, "|")
		if spec.Kind == ticket.FieldNumber {
			nums := make([]float64, len(parts))
			for i, p := range parts {
				n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
				if err != nil {
					return Clause{}, Errorf(field, "bad number %q in set", p)
				}
				nums[i] = n
			}
			return Clause{Field: field, Op: op, Value: nums}, nil
		}
		strs := make([]string, len(parts))
		for i, p := range parts {
			strs[i] = strings.TrimSpace(p)
		}
		return Clause{Field: field, Op: op, Value: strs}, nil
	}

	switch spec.Kind {
	case ticket.FieldNumber:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return Clause{}, Errorf(field, "field %q needs a number, got %q", field, val)
		}
		return Clause{Field: field, Op: op, Value: n}, nil
	case ticket.FieldDate:
		d, err := time.Parse("2006-01-02", val)
		if err != nil {
			return Clause{}, Errorf(field, "field %q needs a YYYY-MM-DD date, got %q", field, val)
		}
		return Clause{Field: field, Op: op, Value: d}, nil
	default:
		return Clause{Field: field, Op: op, Value: val}, nil
	}
}
