package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/timeflow/internal/domain"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// maxLabelWidth is the column width tag labels are truncated to in tables.
const maxLabelWidth = 24

var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML writes v as YAML.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeStructured writes v in the given machine-readable format.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		return writeJSON(w, v)
	case formatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// validateFormat reports an error unless format is one of allowed.
func validateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid --format %q (expected one of %v)", format, allowed)
}

// truncateLabel shortens s to the label column width, respecting wide characters.
func truncateLabel(s string) string {
	return runewidth.Truncate(s, maxLabelWidth, "…")
}

// renderState colors a runtime state name.
func renderState(state domain.RuntimeState) string {
	switch state {
	case domain.StateRunning:
		return runningStyle.Render(state.String())
	case domain.StatePaused:
		return pausedStyle.Render(state.String())
	default:
		return idleStyle.Render(state.String())
	}
}

// formatHours prints an hour value without trailing zeros.
func formatHours(h float64) string {
	return fmt.Sprintf("%gh", h)
}

// formatEnded renders a session timestamp in local time, or "-" when unparseable.
func formatEnded(s domain.Session) string {
	t, ok := s.DayTime()
	if !ok {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
