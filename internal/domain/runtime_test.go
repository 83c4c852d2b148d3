package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func at(secs int) time.Time {
	return t0.Add(time.Duration(secs) * time.Second)
}

func TestSnapshot_State(t *testing.T) {
	start := t0
	tests := []struct {
		name string
		snap Snapshot
		want RuntimeState
	}{
		{"zero value", Snapshot{}, StateIdle},
		{"tag only", Snapshot{CurrentTagID: TagID("study")}, StateIdle},
		{"running", Snapshot{IsRunning: true, ResumeAt: &start, SessionStartAt: &start}, StateRunning},
		{"paused", Snapshot{SessionStartAt: &start, AccumulatedSeconds: 5}, StatePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.State())
		})
	}
}

func TestSnapshot_Start_RequiresTag(t *testing.T) {
	snap := IdleSnapshot()

	next, err := snap.Start(t0)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTagSelected)
	assert.True(t, IsValidation(err))
	assert.True(t, next.Equal(snap))
}

func TestSnapshot_Start_AlreadyRunning(t *testing.T) {
	snap, err := IdleSnapshot().SelectTag(TagID("study"))
	require.NoError(t, err)
	snap, err = snap.Start(t0)
	require.NoError(t, err)

	next, err := snap.Start(at(10))

	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.True(t, next.Equal(snap))
}

func TestSnapshot_Pause_NotRunning(t *testing.T) {
	_, err := IdleSnapshot().Pause(t0)
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.True(t, IsValidation(err))
}

func TestSnapshot_SelectTag_WhileRunning(t *testing.T) {
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	snap, _ = snap.Start(t0)

	next, err := snap.SelectTag(TagID("work"))

	assert.ErrorIs(t, err, ErrTagChangeWhileRunning)
	assert.True(t, next.CurrentTagID.Is("study"))
}

func TestSnapshot_SelectTag_WhilePaused(t *testing.T) {
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	snap, _ = snap.Start(t0)
	snap, _ = snap.Pause(at(30))

	next, err := snap.SelectTag(TagID("work"))

	require.NoError(t, err)
	assert.True(t, next.CurrentTagID.Is("work"))
	assert.Equal(t, int64(30), next.AccumulatedSeconds)
}

func TestSnapshot_PauseResumeAccumulates(t *testing.T) {
	// Running spans: 0-100, 200-250, 400-475 → 225 seconds
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	steps := []struct {
		op  string
		sec int
	}{
		{"start", 0}, {"pause", 100},
		{"start", 200}, {"pause", 250},
		{"start", 400},
	}
	var err error
	for _, s := range steps {
		switch s.op {
		case "start":
			snap, err = snap.Start(at(s.sec))
		case "pause":
			snap, err = snap.Pause(at(s.sec))
		}
		require.NoError(t, err)
	}

	next, session := snap.Stop(at(475))

	require.NotNil(t, session)
	assert.Equal(t, int64(225), session.DurationSeconds)
	assert.True(t, session.Tag.Is("study"))
	assert.Equal(t, FormatTimestamp(t0), session.StartedAt)
	assert.Equal(t, FormatTimestamp(at(475)), session.EndedAt)
	assert.NotEmpty(t, session.ID)

	assert.Equal(t, StateIdle, next.State())
	assert.True(t, next.CurrentTagID.Is("study"), "tag selection is kept")
	assert.Zero(t, next.AccumulatedSeconds)
}

func TestSnapshot_Stop_Idle(t *testing.T) {
	snap := Snapshot{CurrentTagID: TagID("study")}

	next, session := snap.Stop(t0)

	assert.Nil(t, session)
	assert.True(t, next.Equal(snap))
}

func TestSnapshot_Stop_ZeroElapsedDiscards(t *testing.T) {
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	snap, _ = snap.Start(t0)

	next, session := snap.Stop(t0.Add(400 * time.Millisecond))

	assert.Nil(t, session)
	assert.Equal(t, StateIdle, next.State())
}

func TestSnapshot_Elapsed(t *testing.T) {
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	snap, _ = snap.Start(t0)
	snap, _ = snap.Pause(at(40))
	snap, _ = snap.Start(at(100))

	tests := []struct {
		name string
		now  time.Time
		want int64
	}{
		{"at resume", at(100), 40},
		{"gap after reload", at(100 + 3600), 40 + 3600},
		{"sub-second floors", at(105).Add(900 * time.Millisecond), 45},
		{"clock behind resume", at(50), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.Elapsed(tt.now)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, snap.AccumulatedSeconds)
		})
	}
}

func TestSnapshot_Normalize(t *testing.T) {
	start := t0
	tests := []struct {
		name string
		in   Snapshot
		want RuntimeState
	}{
		{"running without resume", Snapshot{IsRunning: true, SessionStartAt: &start, AccumulatedSeconds: 10}, StatePaused},
		{"running without start", Snapshot{IsRunning: true, ResumeAt: &start}, StateRunning},
		{"paused with stray resume", Snapshot{SessionStartAt: &start, ResumeAt: &start}, StatePaused},
		{"banked time without start", Snapshot{AccumulatedSeconds: 30}, StateIdle},
		{"negative accumulated", Snapshot{SessionStartAt: &start, AccumulatedSeconds: -5}, StatePaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got.State())
			assert.GreaterOrEqual(t, got.AccumulatedSeconds, int64(0))
			if got.State() == StateIdle {
				assert.Zero(t, got.AccumulatedSeconds)
			}
			if got.State() == StateRunning {
				assert.NotNil(t, got.SessionStartAt)
			}
		})
	}
}

func TestSnapshot_JSON(t *testing.T) {
	snap, _ := IdleSnapshot().SelectTag(TagID("study"))
	snap, _ = snap.Start(t0)
	snap, _ = snap.Pause(at(20))
	snap, _ = snap.Start(at(60))

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, true, raw["isRunning"])
	assert.Equal(t, "study", raw["currentTagId"])
	assert.Equal(t, float64(at(60).UnixMilli()), raw["resumeAt"])
	assert.Equal(t, "2024-03-10T09:00:00.000Z", raw["sessionStartAt"])
	assert.Equal(t, float64(20), raw["accumulatedSeconds"])

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(snap))
}

func TestSnapshot_UnmarshalJSON_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		state RuntimeState
		tag   string
		accum int64
	}{
		{"empty object", `{}`, StateIdle, "", 0},
		{"numeric tag", `{"currentTagId": 7}`, StateIdle, "7", 0},
		{"string resume", `{"isRunning": true, "resumeAt": "2024-03-10T09:00:00Z", "currentTagId": "a"}`, StateRunning, "a", 0},
		{"running without resume", `{"isRunning": true, "sessionStartAt": "2024-03-10T09:00:00Z", "accumulatedSeconds": 12.7}`, StatePaused, "", 12},
		{"garbage fields", `{"isRunning": "yes", "accumulatedSeconds": "lots", "resumeAt": {}}`, StateIdle, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.state, s.State())
			assert.Equal(t, tt.tag, s.CurrentTagID.String())
			assert.Equal(t, tt.accum, s.AccumulatedSeconds)
		})
	}
}
