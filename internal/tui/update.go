package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/timeflow/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		barWidth := min(max(msg.Width-8, 10), maxBarWidth)
		m.goalBar.Width = barWidth
		m.dailyBar.Width = barWidth
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgLoaded:
		m.loaded = true
		m.status = msg.Status
		m.goal = msg.Goal
		m.tags = msg.Tags
		m.err = nil
		if msg.Notice != "" {
			m.notice = msg.Notice
		}
		// A new generation supersedes any tick already in flight.
		m.tickGen++
		if m.status.State == domain.StateRunning {
			return m, m.tick(m.tickGen)
		}
		return m, nil

	case MsgTick:
		if msg.Gen != m.tickGen || m.status.State != domain.StateRunning {
			return m, nil
		}
		return m, m.load("")

	case MsgError:
		m.err = msg.Err
		m.notice = ""
		// Keep the clock alive after a failed refresh.
		m.tickGen++
		if m.status.State == domain.StateRunning {
			return m, m.tick(m.tickGen)
		}
		return m, nil
	}

	return m, nil
}

// handleKey dispatches a key press to its action.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.StartPause):
		return m, m.toggle()

	case key.Matches(msg, m.keys.Stop):
		return m, m.stop()

	case key.Matches(msg, m.keys.NextTag), key.Matches(msg, m.keys.PrevTag):
		if m.status.State == domain.StateRunning {
			m.notice = "Pause or stop the timer to change tag"
			return m, nil
		}
		delta := 1
		if key.Matches(msg, m.keys.PrevTag) {
			delta = -1
		}
		return m, m.cycleTag(delta)

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}

	return m, nil
}
