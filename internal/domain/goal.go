package domain

import (
	"math"
	"slices"
	"time"
)

// TrendDays is the number of calendar days in the goal trend series.
const TrendDays = 7

// DefaultMilestones returns the hour thresholds used when none are configured.
func DefaultMilestones() []float64 {
	return []float64{100, 500, 1000, 3000, 5000, 10000}
}

// GoalInput carries everything the goal view is derived from.
// Fields are ordered to minimize memory padding.
type GoalInput struct {
	Now        time.Time
	Runtime    Snapshot
	Sessions   []Session
	Tags       []Tag
	Milestones []float64 // ascending hour thresholds; nil uses DefaultMilestones
	Settings   Settings
}

// TrendPoint is one day of the trend series.
type TrendPoint struct {
	Day     string `json:"day" yaml:"day"` // YYYY-MM-DD, local
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// TagTotal is the time spent on one tag.
type TagTotal struct {
	TagID   string `json:"tagId" yaml:"tagId"`
	Label   string `json:"label" yaml:"label"`
	Seconds int64  `json:"seconds" yaml:"seconds"`
}

// Milestone is the next cumulative-hours threshold ahead of the current total.
type Milestone struct {
	Hours          float64 `json:"hours" yaml:"hours"`
	RemainingHours float64 `json:"remainingHours" yaml:"remainingHours"`
}

// GoalView is the derived Mastery Goal and daily goal progress.
// Fields are ordered to minimize memory padding.
type GoalView struct {
	NextMilestone     *Milestone   `json:"nextMilestone" yaml:"nextMilestone"`
	TopTag            *TagTotal    `json:"topTag" yaml:"topTag"`
	GoalName          string       `json:"goalName" yaml:"goalName"`
	GoalTagIDs        []string     `json:"goalTagIds" yaml:"goalTagIds"`
	TodayByTag        []TagTotal   `json:"todayByTag" yaml:"todayByTag"`
	Trend             []TrendPoint `json:"trend" yaml:"trend"`
	CumulativeSeconds int64        `json:"cumulativeSeconds" yaml:"cumulativeSeconds"`
	LiveSeconds       int64        `json:"liveSeconds" yaml:"liveSeconds"`
	TodaySeconds      int64        `json:"todaySeconds" yaml:"todaySeconds"`
	DailyGoalSeconds  int64        `json:"dailyGoalSeconds" yaml:"dailyGoalSeconds"`
	TargetHours       float64      `json:"targetHours" yaml:"targetHours"`
	Progress          float64      `json:"progress" yaml:"progress"`
	ProgressPercent   float64      `json:"progressPercent" yaml:"progressPercent"`
	DailyProgress     float64      `json:"dailyProgress" yaml:"dailyProgress"`
	DailyPercent      float64      `json:"dailyPercent" yaml:"dailyPercent"`
	TopTagShare       float64      `json:"topTagShare" yaml:"topTagShare"`
}

// CumulativeHours returns the cumulative total in hours.
func (v GoalView) CumulativeHours() float64 {
	return float64(v.CumulativeSeconds) / 3600
}

// ResolveGoalTags returns the tag ids counted toward the Mastery Goal: active tags
// intersected with the selection, or every active tag when the selection is empty or
// matches no active tag.
func ResolveGoalTags(tags []Tag, selected []string) []string {
	active := ActiveTagIDs(tags)
	if len(selected) == 0 {
		return active
	}
	filtered := make([]string, 0, len(active))
	for _, id := range active {
		if slices.Contains(selected, id) {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return active
	}
	return filtered
}

// NextMilestone returns the smallest threshold strictly greater than hours.
// ok is false when every threshold has been passed.
func NextMilestone(milestones []float64, hours float64) (Milestone, bool) {
	sorted := slices.Clone(milestones)
	slices.Sort(sorted)
	for _, m := range sorted {
		if m > hours {
			return Milestone{Hours: m, RemainingHours: m - hours}, true
		}
	}
	return Milestone{}, false
}

// LiveSeconds returns the in-progress interval's contribution for the given goal tags:
// the elapsed time of a running interval, or of a paused one with banked time, whose
// tag is a goal tag.
func LiveSeconds(runtime Snapshot, goalTags []string, now time.Time) int64 {
	id, ok := runtime.CurrentTagID.ID()
	if !ok || !slices.Contains(goalTags, id) {
		return 0
	}
	switch runtime.State() {
	case StateRunning, StatePaused:
		return runtime.Elapsed(now)
	}
	return 0
}

// DeriveGoalView computes goal progress. It never fails: degenerate input yields zero
// totals and empty series.
func DeriveGoalView(in GoalInput) GoalView {
	goalTags := ResolveGoalTags(in.Tags, in.Settings.MasterGoalTagIDs)
	isGoalTag := make(map[string]bool, len(goalTags))
	for _, id := range goalTags {
		isGoalTag[id] = true
	}

	todayKey := DayKey(in.Now)
	buckets := make(map[string]int64, TrendDays)
	var cumulative, today int64
	var todayByTag []TagTotal
	addToday := func(id string, secs int64) {
		for i := range todayByTag {
			if todayByTag[i].TagID == id {
				todayByTag[i].Seconds = AddSeconds(todayByTag[i].Seconds, secs)
				return
			}
		}
		todayByTag = append(todayByTag, TagTotal{TagID: id, Label: TagLabel(in.Tags, TagID(id)), Seconds: secs})
	}

	for _, s := range in.Sessions {
		id, ok := s.Tag.ID()
		if !ok || !isGoalTag[id] {
			continue
		}
		secs := max(s.DurationSeconds, 0)
		cumulative = AddSeconds(cumulative, secs)
		t, ok := s.DayTime()
		if !ok {
			continue
		}
		key := DayKey(t)
		buckets[key] = AddSeconds(buckets[key], secs)
		if key == todayKey {
			today = AddSeconds(today, secs)
			addToday(id, secs)
		}
	}

	live := LiveSeconds(in.Runtime, goalTags, in.Now)
	cumulative = AddSeconds(cumulative, live)
	today = AddSeconds(today, live)
	if live > 0 {
		id, _ := in.Runtime.CurrentTagID.ID()
		addToday(id, live)
	}

	view := GoalView{
		GoalName:          in.Settings.MasterGoalName,
		GoalTagIDs:        goalTags,
		TodayByTag:        todayByTag,
		CumulativeSeconds: cumulative,
		LiveSeconds:       live,
		TodaySeconds:      today,
		TargetHours:       ClampHours(in.Settings.MasterGoalHours),
	}

	for _, day := range LastDays(in.Now, TrendDays) {
		key := DayKey(day)
		secs := buckets[key]
		if key == todayKey {
			secs = today
		}
		view.Trend = append(view.Trend, TrendPoint{Day: key, Seconds: secs})
	}

	view.Progress = ratio(cumulative, view.TargetHours*3600)
	view.ProgressPercent = roundPercent(view.Progress)

	view.DailyGoalSeconds = ClampSeconds(math.Round(ClampHours(in.Settings.DailyGoalHours) * 3600))
	view.DailyProgress = ratio(today, float64(view.DailyGoalSeconds))
	view.DailyPercent = roundPercent(view.DailyProgress)

	milestones := in.Milestones
	if milestones == nil {
		milestones = DefaultMilestones()
	}
	if m, ok := NextMilestone(milestones, view.CumulativeHours()); ok {
		view.NextMilestone = &m
	}

	for i := range todayByTag {
		if view.TopTag == nil || todayByTag[i].Seconds > view.TopTag.Seconds {
			top := todayByTag[i]
			view.TopTag = &top
		}
	}
	if view.TopTag != nil && today > 0 {
		view.TopTagShare = float64(view.TopTag.Seconds) / float64(today)
	}

	return view
}

// ratio returns min(1, secs/target), or 0 when target is not positive.
func ratio(secs int64, target float64) float64 {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	return math.Min(1, float64(secs)/target)
}

// roundPercent converts a ratio to a percentage rounded to one decimal place.
func roundPercent(r float64) float64 {
	return math.Round(r*1000) / 10
}
