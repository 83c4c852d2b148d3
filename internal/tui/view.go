package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	reflowtruncate "github.com/muesli/reflow/truncate"

	"github.com/runoshun/timeflow/internal/domain"
)

// maxTagWidth is the display width at which tag labels are truncated.
const maxTagWidth = 24

// sparkBlocks are the trend glyphs from empty to full.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 || !m.loaded {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewTimer())
	b.WriteString("\n")
	b.WriteString(m.viewGoal())
	b.WriteString(m.viewDaily())
	b.WriteString(m.viewTrend())
	b.WriteString(m.viewMessage())
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.App.Render(clipLines(b.String(), m.width-m.styles.App.GetHorizontalFrameSize()))
}

// clipLines cuts every line to width cells, keeping ANSI sequences intact.
func clipLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = reflowtruncate.StringWithTail(line, uint(width), "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewHeader() string {
	return m.styles.Header.Render(m.styles.HeaderText.Render("timeflow"))
}

// viewTimer renders the clock, state badge and selected tag.
func (m *Model) viewTimer() string {
	clock := m.styles.Clock.Render(domain.FormatClock(m.status.ElapsedSeconds))
	state := m.styles.StateStyle(m.status.State).Render(strings.ToUpper(m.status.State.String()))

	color := ""
	if i := domain.FindTag(m.tags, m.status.TagID); i >= 0 {
		color = m.tags[i].Color
	}
	tag := m.styles.TagStyle(color).Render(truncate(m.status.Label))

	return lipgloss.JoinHorizontal(lipgloss.Top, clock, state, "  ", tag) + "\n"
}

// viewGoal renders the Mastery Goal bar and next milestone.
func (m *Model) viewGoal() string {
	v := m.goal
	name := v.GoalName
	if name == "" {
		name = "Mastery Goal"
	}

	var b strings.Builder
	b.WriteString(m.styles.Section.Render(truncate(name)) + "\n")
	b.WriteString(m.goalBar.ViewAs(v.Progress) + "\n")
	b.WriteString(m.styles.Value.Render(fmt.Sprintf("%.1fh / %gh (%.1f%%)",
		v.CumulativeHours(), v.TargetHours, v.ProgressPercent)))
	if v.NextMilestone != nil {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("  next %gh in %.1fh",
			v.NextMilestone.Hours, v.NextMilestone.RemainingHours)))
	}
	b.WriteString("\n")
	return b.String()
}

// viewDaily renders today's progress toward the daily goal.
func (m *Model) viewDaily() string {
	v := m.goal

	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Today") + "\n")
	b.WriteString(m.dailyBar.ViewAs(v.DailyProgress) + "\n")
	b.WriteString(m.styles.Value.Render(fmt.Sprintf("%s / %s (%.0f%%)",
		domain.FormatHoursMinutes(v.TodaySeconds), domain.FormatHoursMinutes(v.DailyGoalSeconds), v.DailyPercent)))
	if v.TopTag != nil {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("  top %s %.0f%%",
			truncate(v.TopTag.Label), v.TopTagShare*100)))
	}
	b.WriteString("\n")
	return b.String()
}

// viewTrend renders the last days as a sparkline.
func (m *Model) viewTrend() string {
	if len(m.goal.Trend) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Section.Render(fmt.Sprintf("Last %d days", len(m.goal.Trend))) + "\n")
	b.WriteString(m.styles.Trend.Render(sparkline(m.goal.Trend)))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewMessage() string {
	switch {
	case m.err != nil:
		return "\n" + m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n"
	case m.notice != "":
		return "\n" + m.styles.Notice.Render(m.notice) + "\n"
	}
	return ""
}

// sparkline scales each day against the busiest one.
func sparkline(points []domain.TrendPoint) string {
	var peak int64
	for _, p := range points {
		peak = max(peak, p.Seconds)
	}
	out := make([]rune, len(points))
	for i, p := range points {
		if peak == 0 || p.Seconds == 0 {
			out[i] = sparkBlocks[0]
			continue
		}
		idx := int(p.Seconds * int64(len(sparkBlocks)-1) / peak)
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

func truncate(label string) string {
	return runewidth.Truncate(label, maxTagWidth, "…")
}
