// Package report renders per-sprint markdown reports from the metric
// and scoring layers.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/imkarma/pulse/internal/health"
	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/ticket"
)

// Render builds the markdown report for one sprint.
func Render(st *ticket.Store, sprintID string, cfg health.Config) (string, error) {
	v, err := st.BySprint(sprintID)
	if err != nil {
		return "", err
	}
	summary, err := metrics.SummarizeSprint(st, sprintID)
	if err != nil {
		return "", err
	}
	score, err := health.Score(st, sprintID, cfg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Sprint Report — %s\n\n", sprintID)
	fmt.Fprintf(&b, "Generated %s\n\n", time.Now().Format("2006-01-02"))

	writeKPIs(&b, v, summary, score)
	writeStatusDistribution(&b, summary)
	writeBugs(&b, v)
	writeWorkload(&b, v)
	writeSpillover(&b, v)

	return b.String(), nil
}

func writeKPIs(b *strings.Builder, v ticket.View, s metrics.SprintSummary, score health.Breakdown) {
	completion := metrics.CompletionRate(v)
	completionCell := "N/A"
	if !completion.Undefined {
		completionCell = fmt.Sprintf("%.1f%%", completion.Value)
	}

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Planned points | %.1f |\n", s.PlannedPoints)
	fmt.Fprintf(b, "| Velocity (completed points) | %.1f |\n", s.CompletedPoints)
	fmt.Fprintf(b, "| Completion rate | %s |\n", completionCell)
	fmt.Fprintf(b, "| Items | %d |\n", s.TotalItems)
	fmt.Fprintf(b, "| Bugs | %d |\n", s.ByType[ticket.TypeBug])
	fmt.Fprintf(b, "| Spillover items | %d |\n", s.Spillovers)
	fmt.Fprintf(b, "| Avg cycle time | %.1f days |\n", metrics.AvgCycleTime(v))
	fmt.Fprintf(b, "| Health score | %.1f / 100 |\n\n", score.Score)
}

func writeStatusDistribution(b *strings.Builder, s metrics.SprintSummary) {
	b.WriteString("## Status Distribution\n\n")
	b.WriteString("| Status | Items |\n|---|---|\n")
	for _, status := range []ticket.Status{
		ticket.StatusToDo, ticket.StatusInProgress, ticket.StatusInTesting,
		ticket.StatusDone, ticket.StatusBlocked,
	} {
		if n := s.ByStatus[status]; n > 0 {
			fmt.Fprintf(b, "| %s | %d |\n", status, n)
		}
	}
	b.WriteString("\n")
}

func writeBugs(b *strings.Builder, v ticket.View) {
	bugs := metrics.AnalyzeBugs(v)
	b.WriteString("## Bugs\n\n")
	if bugs.Total == 0 {
		b.WriteString("No bugs in this sprint.\n\n")
		return
	}
	fmt.Fprintf(b, "%d total — %d open, %d closed", bugs.Total, bugs.Open, bugs.Closed)
	if bugs.Critical > 0 {
		fmt.Fprintf(b, ", %d critical priority", bugs.Critical)
	}
	b.WriteString(".\n\n")
	if !bugs.Resolution.Undefined {
		fmt.Fprintf(b, "Resolution rate: %.0f%%. ", 100*bugs.Resolution.Value)
	}
	if bugs.AvgFixDays > 0 {
		fmt.Fprintf(b, "Average fix time: %.1f days.", bugs.AvgFixDays)
	}
	b.WriteString("\n\n")

	if len(bugs.BySeverity) > 0 {
		b.WriteString("| Severity | Count |\n|---|---|\n")
		for _, sev := range []ticket.Severity{
			ticket.SeverityCritical, ticket.SeverityHigh,
			ticket.SeverityMedium, ticket.SeverityLow,
		} {
			if n := bugs.BySeverity[sev]; n > 0 {
				fmt.Fprintf(b, "| %s | %d |\n", sev, n)
			}
		}
		b.WriteString("\n")
	}
	if len(bugs.ByArea) > 0 {
		areas := make([]string, 0, len(bugs.ByArea))
		for area := range bugs.ByArea {
			areas = append(areas, area)
		}
		sort.Strings(areas)
		b.WriteString("| Area | Bugs |\n|---|---|\n")
		for _, area := range areas {
			fmt.Fprintf(b, "| %s | %d |\n", area, bugs.ByArea[area])
		}
		b.WriteString("\n")
	}
}

func writeWorkload(b *strings.Builder, v ticket.View) {
	b.WriteString("## Workload Distribution\n\n")
	dist, err := health.WorkDistribution(v)
	if err != nil {
		b.WriteString("No assigned tickets.\n\n")
		return
	}
	b.WriteString("| Assignee | Points | Hours | Items |\n|---|---|---|---|\n")
	for _, a := range dist.Assignees {
		fmt.Fprintf(b, "| %s | %.1f | %.1f | %d |\n", a.Assignee, a.Points, a.Hours, a.Items)
	}
	fmt.Fprintf(b, "\nBalance score: %.1f / 100\n\n", dist.Balance)
}

func writeSpillover(b *strings.Builder, v ticket.View) {
	spilled := v.Where(func(t ticket.Ticket) bool { return t.Spillover() })
	b.WriteString("## Spillover\n\n")
	if len(spilled) == 0 {
		b.WriteString("Nothing was carried over into this sprint.\n")
		return
	}
	b.WriteString("| Ticket | Points | Assignee | Carried from |\n|---|---|---|---|\n")
	for _, t := range spilled {
		fmt.Fprintf(b, "| %s | %.1f | %s | %s |\n", t.ID, t.StoryPoints, t.Assignee, t.CarriedOverFrom)
	}
}

// Write renders the sprint report and writes it atomically under dir,
// returning the written path. A reader never sees a half-written
// report.
func Write(st *ticket.Store, sprintID, dir string, cfg health.Config) (string, error) {
	content, err := Render(st, sprintID, cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("sprint-%s.md", sanitize(sprintID)))
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// sanitize keeps sprint ids filesystem-safe.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, id)
}
