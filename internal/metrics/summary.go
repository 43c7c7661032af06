package metrics

import (
	"sort"

	"github.com/imkarma/pulse/internal/ticket"
)

// SprintSummary is the per-sprint roll-up behind the summary command
// and the report header.
type SprintSummary struct {
	SprintID        string
	TotalItems      int
	ByType          map[ticket.Type]int
	ByStatus        map[ticket.Status]int
	PlannedPoints   float64
	CompletedPoints float64
	Spillovers      int
}

// SummarizeSprint rolls up one sprint's counts and points.
func SummarizeSprint(st *ticket.Store, sprintID string) (SprintSummary, error) {
	v, err := st.BySprint(sprintID)
	if err != nil {
		return SprintSummary{}, err
	}
	s := SprintSummary{
		SprintID: sprintID,
		ByType:   make(map[ticket.Type]int),
		ByStatus: make(map[ticket.Status]int),
	}
	for _, t := range v {
		s.TotalItems++
		s.ByType[t.Type]++
		s.ByStatus[t.Status]++
		s.PlannedPoints += t.StoryPoints
		if t.Done() {
			s.CompletedPoints += t.StoryPoints
		}
		if t.Spillover() {
			s.Spillovers++
		}
	}
	return s, nil
}

// MemberPerformance is one assignee's slice of the work in a view.
type MemberPerformance struct {
	Assignee        string
	Role            string
	TotalTickets    int
	CompletedTicket int
	TotalPoints     float64
	CompletedPoints float64
	TotalHours      float64
}

// TeamPerformance breaks a view down per assignee, sorted by completed
// points descending (ties by name, so output is deterministic).
func TeamPerformance(v ticket.View) []MemberPerformance {
	index := make(map[string]int)
	var out []MemberPerformance
	for _, t := range v {
		i, seen := index[t.Assignee]
		if !seen {
			i = len(out)
			index[t.Assignee] = i
			out = append(out, MemberPerformance{Assignee: t.Assignee, Role: t.Role})
		}
		m := &out[i]
		m.TotalTickets++
		m.TotalPoints += t.StoryPoints
		m.TotalHours += t.DevHours + t.QAHours
		if t.Done() {
			m.CompletedTicket++
			m.CompletedPoints += t.StoryPoints
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletedPoints != out[j].CompletedPoints {
			return out[i].CompletedPoints > out[j].CompletedPoints
		}
		return out[i].Assignee < out[j].Assignee
	})
	return out
}

// BugBreakdown is the quality picture of a view: counts, severity and
// area distributions, and how long fixed bugs took.
type BugBreakdown struct {
	Total      int
	Open       int
	Closed     int
	Critical   int // critical priority
	BySeverity map[ticket.Severity]int
	ByArea     map[string]int
	AvgFixDays float64 // over closed bugs with both dates
	Resolution Result  // fraction of bugs resolved
}

// AnalyzeBugs summarizes the bug population of a view.
func AnalyzeBugs(v ticket.View) BugBreakdown {
	bugs := v.Where(func(t ticket.Ticket) bool { return t.Type == ticket.TypeBug })
	b := BugBreakdown{
		Total:      len(bugs),
		BySeverity: make(map[ticket.Severity]int),
		ByArea:     make(map[string]int),
		Resolution: ResolutionRate(v),
	}
	for _, t := range bugs {
		if t.Done() {
			b.Closed++
		} else {
			b.Open++
		}
		if t.Priority == ticket.PriorityCritical {
			b.Critical++
		}
		if t.Severity != "" {
			b.BySeverity[t.Severity]++
		}
		if t.Area != "" {
			b.ByArea[t.Area]++
		}
	}
	b.AvgFixDays = AvgCycleTime(bugs)
	return b
}
