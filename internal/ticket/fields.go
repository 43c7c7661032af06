package ticket

import "time"

// FieldKind tells the query layer which comparisons a field supports.
type FieldKind int

const (
	FieldString FieldKind = iota // free text, supports =/!=/in/contains
	FieldEnum                    // restricted text, supports =/!=/in
	FieldNumber                  // supports all ordering operators
	FieldDate                    // supports all ordering operators
)

// FieldSpec describes one queryable ticket field. Exactly one of the
// accessor funcs is set, matching Kind (dates use Date, numbers use
// Number, everything else String).
type FieldSpec struct {
	Kind   FieldKind
	String func(Ticket) string
	Number func(Ticket) float64
	Date   func(Ticket) time.Time
}

// Fields maps the external field names used in predicates and
// group-by dimensions to their accessors. Names match the loader's
// column vocabulary.
var Fields = map[string]FieldSpec{
	"ticket_id": {Kind: FieldString, String: func(t Ticket) string { return t.ID }},
	"sprint_id": {Kind: FieldEnum, String: func(t Ticket) string { return t.SprintID }},
	"type":      {Kind: FieldEnum, String: func(t Ticket) string { return string(t.Type) }},
	"status":    {Kind: FieldEnum, String: func(t Ticket) string { return string(t.Status) }},
	"priority":  {Kind: FieldEnum, String: func(t Ticket) string { return string(t.Priority) }},
	"assignee":  {Kind: FieldEnum, String: func(t Ticket) string { return t.Assignee }},
	"role":      {Kind: FieldEnum, String: func(t Ticket) string { return t.Role }},
	"area":      {Kind: FieldEnum, String: func(t Ticket) string { return t.Area }},
	"severity":  {Kind: FieldEnum, String: func(t Ticket) string { return string(t.Severity) }},
	"comments":  {Kind: FieldString, String: func(t Ticket) string { return t.Comments }},
	"carried_over_from": {
		Kind: FieldEnum, String: func(t Ticket) string { return t.CarriedOverFrom },
	},
	"story_points": {Kind: FieldNumber, Number: func(t Ticket) float64 { return t.StoryPoints }},
	"dev_hours":    {Kind: FieldNumber, Number: func(t Ticket) float64 { return t.DevHours }},
	"qa_hours":     {Kind: FieldNumber, Number: func(t Ticket) float64 { return t.QAHours }},
	"created_date": {Kind: FieldDate, Date: func(t Ticket) time.Time { return t.CreatedDate }},
	"completed_date": {
		Kind: FieldDate, Date: func(t Ticket) time.Time { return t.CompletedDate },
	},
}
