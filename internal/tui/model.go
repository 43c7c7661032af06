// Package tui is the interactive sprint dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/health"
	"github.com/imkarma/pulse/internal/metrics"
	"github.com/imkarma/pulse/internal/ticket"
)

// screen is which view the dashboard is showing.
type screen int

const (
	screenDashboard screen = iota // sprint KPIs (main)
	screenFilter                  // ad-hoc filter results
)

// Model is the top-level bubbletea model.
type Model struct {
	eng    *engine.Engine
	width  int
	height int

	currentScreen screen

	// Sprint selection.
	sprints []string
	cursor  int

	// Panels for the selected sprint, rebuilt on cursor moves.
	summary  metrics.SprintSummary
	score    health.Breakdown
	dist     health.Distribution
	haveDist bool
	panelErr string

	// Ad-hoc filter.
	filterInput textinput.Model
	filterOpen  bool
	filterErr   string
	matches     ticket.View
	matchTop    int // scroll offset into matches

	quitting bool
}

// New creates the dashboard model against a loaded engine.
func New(eng *engine.Engine) Model {
	fi := textinput.New()
	fi.Placeholder = `filter, e.g. status = Done and story_points >= 3`
	fi.CharLimit = 200
	fi.Width = 60

	m := Model{
		eng:         eng,
		sprints:     eng.Store().Sprints(),
		filterInput: fi,
	}
	m.recalc()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// recalc rebuilds the dashboard panels for the sprint under the
// cursor.
func (m *Model) recalc() {
	m.panelErr = ""
	m.haveDist = false
	if len(m.sprints) == 0 {
		m.panelErr = "no sprints in dataset"
		return
	}
	id := m.sprints[m.cursor]

	summary, err := metrics.SummarizeSprint(m.eng.Store(), id)
	if err != nil {
		m.panelErr = err.Error()
		return
	}
	m.summary = summary

	score, err := health.Score(m.eng.Store(), id, m.eng.HealthConfig())
	if err != nil {
		m.panelErr = err.Error()
		return
	}
	m.score = score

	v, err := m.eng.Store().BySprint(id)
	if err != nil {
		m.panelErr = err.Error()
		return
	}
	if dist, err := health.WorkDistribution(v); err == nil {
		m.dist = dist
		m.haveDist = true
	}
}
