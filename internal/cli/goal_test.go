package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/timeflow/internal/app"
	"github.com/runoshun/timeflow/internal/domain"
)

// seedGoal sets a 10h goal on study and leaves one hour of study running.
func seedGoal(t *testing.T) *app.Container {
	t.Helper()
	c, clock := newTestContainer(t)
	_, err := run(t, c, "settings", "set", "--goal-name", "Guitar", "--goal-hours", "10", "--daily-hours", "2", "--toggle-tag", "study")
	require.NoError(t, err)
	_, err = run(t, c, "start", "--tag", "study")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	return c
}

func TestGoalCommand_Table(t *testing.T) {
	c := seedGoal(t)

	out, err := run(t, c, "goal")

	require.NoError(t, err)
	assert.Contains(t, out, "Guitar")
	assert.Contains(t, out, "1h of 10h (10.0%)")
	assert.Contains(t, out, "includes 1h in progress")
	assert.Contains(t, out, "Next milestone: 100h (99.0h to go)")
	assert.Contains(t, out, "1h of 2h (50.0%)")
	assert.Contains(t, out, "Top tag: Study (100%)")
	assert.Contains(t, out, "Last 7 days")
}

func TestGoalCommand_JSON(t *testing.T) {
	c := seedGoal(t)

	out, err := run(t, c, "goal", "--json")
	require.NoError(t, err)

	var v domain.GoalView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, int64(3600), v.CumulativeSeconds)
	assert.Equal(t, float64(10), v.ProgressPercent)
	assert.Len(t, v.Trend, domain.TrendDays)
}

func TestGoalCommand_YAML(t *testing.T) {
	c := seedGoal(t)

	out, err := run(t, c, "goal", "--yaml")
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Guitar", v["goalName"])
	assert.Equal(t, 3600, v["cumulativeSeconds"])
}

func TestGoalCommand_InvalidFormat(t *testing.T) {
	c, _ := newTestContainer(t)

	_, err := run(t, c, "goal", "--format", "xml")

	assert.Error(t, err)
}

func TestSettingsCommands(t *testing.T) {
	c, _ := newTestContainer(t)

	out, err := run(t, c, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily goal:        3h")
	assert.Contains(t, out, "all active tags")

	out, err = run(t, c, "settings", "set", "--daily-hours=-1", "--toggle-tag", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily goal:        0h")
	assert.Contains(t, out, "Goal tags:         Work")

	_, err = run(t, c, "settings", "set")
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
}
