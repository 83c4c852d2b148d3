// Package tui provides the live terminal timer for timeflow.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/domain"
	"github.com/runoshun/timeflow/internal/usecase"
)

// maxBarWidth caps the width of the progress bars.
const maxBarWidth = 60

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// State (slices - contain pointers)
	tags   []domain.Tag
	notice string

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	goalBar  progress.Model
	dailyBar progress.Model
	status   usecase.ShowStatusOutput
	goal     domain.GoalView

	// Numeric state (smaller types last)
	interval time.Duration
	width    int
	tickGen  int
	loaded   bool
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	interval := domain.DefaultTickInterval
	if c.AppConfig != nil {
		interval = c.AppConfig.TickInterval()
	}
	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		goalBar:   progress.New(progress.WithSolidFill(string(Colors.GoalBar)), progress.WithoutPercentage()),
		dailyBar:  progress.New(progress.WithSolidFill(string(Colors.DailyBar)), progress.WithoutPercentage()),
		interval:  interval,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.load("")
}

// load returns a command that reads the timer, goal and tags.
func (m *Model) load(notice string) tea.Cmd {
	return func() tea.Msg {
		return m.snapshot(notice)
	}
}

// snapshot collects the state rendered by the view.
func (m *Model) snapshot(notice string) tea.Msg {
	ctx := context.Background()

	status, err := m.container.ShowStatusUseCase().Execute(ctx, usecase.ShowStatusInput{})
	if err != nil {
		return MsgError{Err: err}
	}
	goal, err := m.container.ShowGoalUseCase().Execute(ctx, usecase.ShowGoalInput{})
	if err != nil {
		return MsgError{Err: err}
	}
	tags, err := m.container.ListTagsUseCase().Execute(ctx, usecase.ListTagsInput{})
	if err != nil {
		return MsgError{Err: err}
	}
	return MsgLoaded{
		Status: *status,
		Goal:   goal.View,
		Tags:   tags.Tags,
		Notice: notice,
	}
}

// tick schedules the next refresh for generation gen.
func (m *Model) tick(gen int) tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return MsgTick{Gen: gen}
	})
}

// toggle starts or resumes an idle or paused timer, and pauses a running one.
func (m *Model) toggle() tea.Cmd {
	running := m.status.State == domain.StateRunning
	return func() tea.Msg {
		ctx := context.Background()
		if running {
			out, err := m.container.PauseTimerUseCase().Execute(ctx, usecase.PauseTimerInput{})
			if err != nil {
				return MsgError{Err: err}
			}
			return m.snapshot("Paused at " + domain.FormatClock(out.ElapsedSeconds))
		}

		out, err := m.container.StartTimerUseCase().Execute(ctx, usecase.StartTimerInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		verb := "Started"
		if out.Resumed {
			verb = "Resumed"
		}
		return m.snapshot(fmt.Sprintf("%s %s", verb, out.Label))
	}
}

// stop finalizes the interval and saves it as a session.
func (m *Model) stop() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.StopTimerUseCase().Execute(context.Background(), usecase.StopTimerInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		if out.Session == nil {
			return m.snapshot("Nothing recorded")
		}
		return m.snapshot(fmt.Sprintf("Saved %s to %s",
			domain.FormatClock(out.Session.DurationSeconds), out.Label))
	}
}

// cycleTag selects the active tag delta steps away from the current one.
func (m *Model) cycleTag(delta int) tea.Cmd {
	ids := domain.ActiveTagIDs(m.tags)
	if len(ids) == 0 {
		return nil
	}
	next := 0
	for i, id := range ids {
		if id == m.status.TagID {
			next = (i + delta + len(ids)) % len(ids)
			break
		}
	}
	id := ids[next]
	return func() tea.Msg {
		out, err := m.container.SelectTagUseCase().Execute(context.Background(), usecase.SelectTagInput{TagID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return m.snapshot("Selected " + out.Label)
	}
}

// reload discards in-memory state and re-reads storage.
func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		m.container.Timer().Reload()
		return m.snapshot("Reloaded")
	}
}
