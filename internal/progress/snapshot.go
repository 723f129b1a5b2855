package progress

import (
	"math"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

// GoalProgress is the rounded mean progress across goals, 0 when there are none.
func GoalProgress(goals []models.Goal) int {
	if len(goals) == 0 {
		return 0
	}
	total := 0
	for _, g := range goals {
		total += g.ProgressPercentage()
	}
	return int(math.Round(float64(total) / float64(len(goals))))
}

// DaysRemaining counts whole calendar days from now until target (YYYY-MM-DD).
// An empty, malformed or past target yields 0.
func DaysRemaining(now time.Time, target string) int {
	if target == "" {
		return 0
	}
	t, err := time.Parse(constants.DateFormat, target)
	if err != nil {
		return 0
	}
	return max(0, daysBetween(t, now))
}

// Snapshot assembles the UserProgress consumed by the UI and notification builders.
// history may or may not include today's entry; today is always taken from the
// today argument.
func Snapshot(today models.DailyEntry, history []models.DailyEntry, goals []models.Goal, settings models.Settings, now time.Time) models.UserProgress {
	full := WithToday(today, history)
	return models.UserProgress{
		CompletedTasks: today.CompletedSessions(),
		TotalTasks:     constants.SessionsPerDay,
		CurrentStreak:  CurrentStreak(full),
		GoalProgress:   GoalProgress(goals),
		DaysRemaining:  DaysRemaining(now, settings.TargetDate),
		MissedDays:     MissedDays(full, now),
		FamilyGoal:     settings.FamilyGoal,
		UserName:       settings.UserName,
	}
}

// WithToday returns history with today's entry at the front, replacing any
// stale copy of the same date. Rows dated after today are dropped so the
// result stays newest first.
func WithToday(today models.DailyEntry, history []models.DailyEntry) []models.DailyEntry {
	out := make([]models.DailyEntry, 0, len(history)+1)
	out = append(out, today)
	for _, e := range history {
		// YYYY-MM-DD compares chronologically as a string.
		if e.Date >= today.Date {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Totals are cumulative counters over a history.
type Totals struct {
	BeastModeDays   int     `json:"beast_mode_days"`
	JobApplications int     `json:"job_applications"`
	StudyHours      float64 `json:"study_hours"`
}

func ComputeTotals(history []models.DailyEntry) Totals {
	var t Totals
	for _, d := range parseHistory(history) {
		if Status(d.entry) == models.StatusBeastMode {
			t.BeastModeDays++
		}
		t.JobApplications += max(0, d.entry.JobApplications)
		t.StudyHours += math.Max(0, d.entry.StudyHours)
	}
	return t
}

// Evaluate returns the achievements in defs that the history has unlocked.
// Custom achievements are unlocked once they exist.
func Evaluate(history []models.DailyEntry, defs []models.Achievement) []models.Achievement {
	longest := LongestStreak(history)
	totals := ComputeTotals(history)

	var unlocked []models.Achievement
	for _, def := range defs {
		switch a := def.(type) {
		case models.StreakAchievement:
			if longest >= a.Days {
				unlocked = append(unlocked, a)
			}
		case models.TotalAchievement:
			var have float64
			switch a.Metric {
			case models.MetricBeastModeDays:
				have = float64(totals.BeastModeDays)
			case models.MetricJobApplications:
				have = float64(totals.JobApplications)
			case models.MetricStudyHours:
				have = totals.StudyHours
			}
			if have >= a.Threshold {
				unlocked = append(unlocked, a)
			}
		case models.CustomAchievement:
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// Report is everything the dashboard shows about progress.
type Report struct {
	Progress      models.UserProgress `json:"progress"`
	Today         models.DailyEntry   `json:"today"`
	Averages      Averages            `json:"averages"`
	LongestStreak int                 `json:"longest_streak"`
	Totals        Totals              `json:"totals"`
	Achievements  []string            `json:"achievements"`
}

// BuildReport runs every metric over the same inputs.
func BuildReport(today models.DailyEntry, history []models.DailyEntry, goals []models.Goal, settings models.Settings, defs []models.Achievement, now time.Time) Report {
	full := WithToday(today, history)
	unlocked := Evaluate(full, defs)
	titles := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		titles = append(titles, a.Title())
	}
	return Report{
		Progress:      Snapshot(today, history, goals, settings, now),
		Today:         today,
		Averages:      ComputeAverages(full, now),
		LongestStreak: LongestStreak(full),
		Totals:        ComputeTotals(full),
		Achievements:  titles,
	}
}
