package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imkarma/pulse/internal/ticket"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	sprintStyle    = lipgloss.NewStyle().PaddingLeft(2)
	sprintSelStyle = lipgloss.NewStyle().
			PaddingLeft(0).
			Bold(true).
			Foreground(clrHighlight)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(0, 1)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.currentScreen {
	case screenFilter:
		content = m.viewFilterResults()
	default:
		content = m.viewDashboard()
	}

	if m.filterOpen {
		prompt := promptStyle.Render(
			titleStyle.Render("Filter") + "\n" + m.filterInput.View() +
				errLine(m.filterErr))
		content += "\n" + prompt
	}

	return content + "\n" + m.footer()
}

func errLine(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + errorStyle.Render(msg)
}

func (m Model) viewDashboard() string {
	header := titleStyle.Render("pulse") +
		dimStyle.Render(fmt.Sprintf("  %d tickets / %d sprints", m.eng.Stats().TicketsLoaded, len(m.sprints)))

	// Left column: sprint list.
	var list strings.Builder
	for i, id := range m.sprints {
		if i == m.cursor {
			list.WriteString(sprintSelStyle.Render("> "+id) + "\n")
		} else {
			list.WriteString(sprintStyle.Render(id) + "\n")
		}
	}

	if m.panelErr != "" {
		return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(list.String()),
			" ",
			errorStyle.Render(m.panelErr))
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.kpiPanel(),
		m.workloadPanel(),
	)

	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(list.String(), "\n")),
		" ",
		right)
}

func (m Model) kpiPanel() string {
	s := m.summary

	completion := "N/A"
	if s.PlannedPoints > 0 {
		completion = fmt.Sprintf("%.1f%%", 100*s.CompletedPoints/s.PlannedPoints)
	}

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(clrGreen)
	switch {
	case m.score.Score < 50:
		scoreStyle = scoreStyle.Foreground(clrRed)
	case m.score.Score < 70:
		scoreStyle = scoreStyle.Foreground(clrYellow)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.SprintID) + "\n")
	fmt.Fprintf(&b, "health      %s\n", scoreStyle.Render(fmt.Sprintf("%.1f / 100", m.score.Score)))
	fmt.Fprintf(&b, "velocity    %.1f of %.1f planned\n", s.CompletedPoints, s.PlannedPoints)
	fmt.Fprintf(&b, "completion  %s\n", completion)
	fmt.Fprintf(&b, "items       %d", s.TotalItems)
	if bugs := s.ByType[ticket.TypeBug]; bugs > 0 {
		fmt.Fprintf(&b, "  (%d bugs)", bugs)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "spillover   %d\n", s.Spillovers)
	b.WriteString(subtleStyle.Render(fmt.Sprintf(
		"sub-scores: completion %.0f, bugs %.0f, spillover %.0f, cycle %.0f",
		m.score.Completion, m.score.BugRatio, m.score.Spillover, m.score.CycleTime)))

	return panelStyle.Render(b.String())
}

func (m Model) workloadPanel() string {
	if !m.haveDist {
		return panelStyle.Render(dimStyle.Render("no assigned tickets"))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Workload") +
		dimStyle.Render(fmt.Sprintf("  balance %.0f / 100", m.dist.Balance)) + "\n")
	shown := m.dist.Assignees
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, a := range shown {
		fmt.Fprintf(&b, "%-16s %6.1f pts %6.1f h %3d items\n",
			a.Assignee, a.Points, a.Hours, a.Items)
	}
	if len(m.dist.Assignees) > len(shown) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(m.dist.Assignees)-len(shown))))
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewFilterResults() string {
	header := titleStyle.Render("Filter results") +
		dimStyle.Render(fmt.Sprintf("  %d tickets", len(m.matches)))

	if len(m.matches) == 0 {
		return header + "\n\n" + dimStyle.Render("no tickets match")
	}

	rows := 15
	if m.height > 10 {
		rows = m.height - 8
	}
	end := m.matchTop + rows
	if end > len(m.matches) {
		end = len(m.matches)
	}

	var b strings.Builder
	for _, t := range m.matches[m.matchTop:end] {
		fmt.Fprintf(&b, "%-10s %-10s %-6s %-12s %5.1f  %s\n",
			t.ID, t.SprintID, t.Type, t.Status, t.StoryPoints, t.Assignee)
	}
	return header + "\n\n" + panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) footer() string {
	key := func(k, desc string) string {
		return footerKeyStyle.Render(k) + " " + footerDescStyle.Render(desc)
	}
	if m.filterOpen {
		return strings.Join([]string{key("enter", "apply"), key("esc", "cancel")}, "  ")
	}
	if m.currentScreen == screenFilter {
		return strings.Join([]string{
			key("↑/↓", "scroll"), key("/", "filter"), key("esc", "dashboard"), key("q", "quit"),
		}, "  ")
	}
	return strings.Join([]string{
		key("↑/↓", "sprint"), key("/", "filter"), key("q", "quit"),
	}, "  ")
}
