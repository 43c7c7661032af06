package health

import (
	"math"
	"sort"

	"github.com/imkarma/pulse/internal/ticket"
)

// AssigneeLoad is one assignee's share of the work in a view.
type AssigneeLoad struct {
	Assignee string
	Points   float64
	Hours    float64
	Items    int
}

// Distribution is the per-assignee workload plus a balance score
// derived from the coefficient of variation of points per assignee:
// 100 means perfectly even, 0 means heavily skewed.
type Distribution struct {
	Assignees []AssigneeLoad // points descending, ties by name
	Balance   float64
}

// WorkDistribution computes the workload split of a view. A single
// assignee is trivially balanced (score 100); a view with no assignees
// is a *ticket.NotFoundError.
func WorkDistribution(v ticket.View) (Distribution, error) {
	index := make(map[string]int)
	var loads []AssigneeLoad
	for _, t := range v {
		if t.Assignee == "" {
			continue
		}
		i, seen := index[t.Assignee]
		if !seen {
			i = len(loads)
			index[t.Assignee] = i
			loads = append(loads, AssigneeLoad{Assignee: t.Assignee})
		}
		loads[i].Points += t.StoryPoints
		loads[i].Hours += t.DevHours + t.QAHours
		loads[i].Items++
	}
	if len(loads) == 0 {
		return Distribution{}, &ticket.NotFoundError{Kind: "assignee", Name: "any"}
	}

	sort.SliceStable(loads, func(i, j int) bool {
		if loads[i].Points != loads[j].Points {
			return loads[i].Points > loads[j].Points
		}
		return loads[i].Assignee < loads[j].Assignee
	})

	return Distribution{Assignees: loads, Balance: balanceScore(loads)}, nil
}

// balanceScore is 100 x (1 - CV) clamped to [0,100], where CV is the
// population coefficient of variation of points per assignee. One
// assignee has no spread and scores 100; a zero mean (nobody holds any
// points) is treated the same way.
func balanceScore(loads []AssigneeLoad) float64 {
	if len(loads) < 2 {
		return 100
	}
	mean := 0.0
	for _, l := range loads {
		mean += l.Points
	}
	mean /= float64(len(loads))
	if mean == 0 {
		return 100
	}
	ss := 0.0
	for _, l := range loads {
		d := l.Points - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(loads)))
	return clamp(100 * (1 - std/mean))
}
