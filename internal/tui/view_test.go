package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/runoshun/timeflow/internal/domain"
)

func TestClipLines(t *testing.T) {
	got := clipLines("0123456789\nabc", 4)

	assert.Equal(t, "0123\nabc", got)
	assert.Equal(t, "keep", clipLines("keep", 0))
}

func TestView_NarrowTerminal(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 24})

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := &Model{}

	assert.Equal(t, "Loading...", m.View())
}

func TestView_Sections(t *testing.T) {
	m, _, _ := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "timeflow")
	assert.Contains(t, view, "00:00:00")
	assert.Contains(t, view, "IDLE")
	assert.Contains(t, view, domain.NoTagLabel)
	assert.Contains(t, view, "Mastery Goal")
	assert.Contains(t, view, "0.0h / 10000h (0.0%)")
	assert.Contains(t, view, "next 100h in 100.0h")
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Last 7 days")
}

func TestView_ResizesBars(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, maxBarWidth, m.goalBar.Width)

	m.Update(tea.WindowSizeMsg{Width: 12, Height: 40})
	assert.Equal(t, 10, m.dailyBar.Width)
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		points []int64
		want   string
	}{
		{"empty days", []int64{0, 0, 0}, "▁▁▁"},
		{"scaled to peak", []int64{0, 3600, 7200}, "▁▄█"},
		{"single day", []int64{60}, "█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]domain.TrendPoint, len(tt.points))
			for i, s := range tt.points {
				points[i] = domain.TrendPoint{Seconds: s}
			}
			assert.Equal(t, tt.want, sparkline(points))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Study", truncate("Study"))

	long := strings.Repeat("あ", 20)
	got := truncate(long)
	assert.LessOrEqual(t, len([]rune(got)), 12)
	assert.True(t, strings.HasSuffix(got, "…"))
}
