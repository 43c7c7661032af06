package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imkarma/pulse/internal/engine"
	"github.com/imkarma/pulse/internal/query"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filterOpen {
			return m.updateFilterInput(msg)
		}
		switch m.currentScreen {
		case screenFilter:
			return m.updateFilterResults(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.recalc()
		}

	case "down", "j":
		if m.cursor < len(m.sprints)-1 {
			m.cursor++
			m.recalc()
		}

	case "/":
		m.filterOpen = true
		m.filterErr = ""
		m.filterInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterOpen = false
		m.filterInput.Blur()
		return m, nil

	case "enter":
		pred, err := query.ParsePredicate(m.filterInput.Value())
		if err != nil {
			m.filterErr = err.Error()
			return m, nil
		}
		resp, err := m.eng.Do(engine.Request{Kind: engine.KindFilter, Predicate: pred})
		if err != nil {
			m.filterErr = err.Error()
			return m, nil
		}
		m.matches = resp.Tickets
		m.matchTop = 0
		m.filterOpen = false
		m.filterInput.Blur()
		m.currentScreen = screenFilter
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) updateFilterResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.currentScreen = screenDashboard

	case "up", "k":
		if m.matchTop > 0 {
			m.matchTop--
		}

	case "down", "j":
		if m.matchTop < len(m.matches)-1 {
			m.matchTop++
		}

	case "/":
		m.filterOpen = true
		m.filterErr = ""
		m.filterInput.Focus()
	}
	return m, nil
}
