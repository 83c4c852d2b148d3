package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/timeflow/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Text    lipgloss.Color

	// Progress bars
	GoalBar  lipgloss.Color
	DailyBar lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
	Text:    lipgloss.Color("#DFE6E9"), // Light gray

	GoalBar:  lipgloss.Color("#A29BFE"),
	DailyBar: lipgloss.Color("#00B894"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Timer
	Clock        lipgloss.Style
	StateIdle    lipgloss.Style
	StateRunning lipgloss.Style
	StatePaused  lipgloss.Style
	Tag          lipgloss.Style

	// Goal sections
	Section lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Trend   lipgloss.Style

	// Messages
	Notice   lipgloss.Style
	ErrorMsg lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Header: lipgloss.NewStyle().
			MarginBottom(1),
		HeaderText: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text).
			MarginRight(2),
		StateIdle: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		StateRunning: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Success),
		StatePaused: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),
		Tag: lipgloss.NewStyle().
			Bold(true),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Text).
			MarginTop(1),
		Label: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Value: lipgloss.NewStyle().
			Foreground(Colors.Text),
		Trend: lipgloss.NewStyle().
			Foreground(Colors.GoalBar),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Success),
		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),
		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
	}
}

// StateStyle returns the style for a runtime state badge.
func (s Styles) StateStyle(state domain.RuntimeState) lipgloss.Style {
	switch state {
	case domain.StateRunning:
		return s.StateRunning
	case domain.StatePaused:
		return s.StatePaused
	case domain.StateIdle:
		return s.StateIdle
	}
	return s.StateIdle
}

// TagStyle returns the tag label style tinted with the tag's color.
func (s Styles) TagStyle(color string) lipgloss.Style {
	if color == "" {
		return s.Tag.Foreground(Colors.Muted)
	}
	return s.Tag.Foreground(lipgloss.Color(color))
}
