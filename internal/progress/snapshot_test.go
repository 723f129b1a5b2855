package progress

import (
	"testing"

	"github.com/julianstephens/beastmode/internal/models"
)

func TestGoalProgress(t *testing.T) {
	goals := []models.Goal{
		{Title: "Applications", TargetValue: 100, CurrentValue: 25},
		{Title: "Savings", TargetValue: 10, CurrentValue: 20}, // clamps to 100
	}
	if got := GoalProgress(goals); got != 63 {
		t.Errorf("expected 63, got %d", got)
	}
	if got := GoalProgress(nil); got != 0 {
		t.Errorf("expected 0 with no goals, got %d", got)
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"2025-03-22", 10},
		{"2025-03-12", 0},
		{"2025-01-01", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		if got := DaysRemaining(today, tt.target); got != tt.want {
			t.Errorf("target %q: expected %d, got %d", tt.target, tt.want, got)
		}
	}
}

func TestSnapshot(t *testing.T) {
	todayEntry := entry(0, 3)
	// history carries a stale copy of today that must be replaced
	history := []models.DailyEntry{entry(0, 0), entry(1, 4), entry(2, 4), entry(3, 0)}
	settings := models.Settings{UserName: "Sam", FamilyGoal: "a house", TargetDate: "2025-04-11"}
	goals := []models.Goal{{Title: "g", TargetValue: 4, CurrentValue: 1}}

	snap := Snapshot(todayEntry, history, goals, settings, today)

	if snap.CompletedTasks != 3 || snap.TotalTasks != 4 {
		t.Errorf("expected 3/4 tasks, got %d/%d", snap.CompletedTasks, snap.TotalTasks)
	}
	if snap.CurrentStreak != 3 {
		t.Errorf("expected streak 3, got %d", snap.CurrentStreak)
	}
	if snap.MissedDays != 0 {
		t.Errorf("expected 0 missed days, got %d", snap.MissedDays)
	}
	if snap.GoalProgress != 25 {
		t.Errorf("expected goal progress 25, got %d", snap.GoalProgress)
	}
	if snap.DaysRemaining != 30 {
		t.Errorf("expected 30 days remaining, got %d", snap.DaysRemaining)
	}
	if snap.UserName != "Sam" || snap.FamilyGoal != "a house" {
		t.Errorf("profile fields not copied: %+v", snap)
	}
}

func TestSnapshot_IgnoresFutureRows(t *testing.T) {
	// an entry for tomorrow sorts ahead of today in storage order
	history := []models.DailyEntry{entry(-1, 0), entry(0, 4), entry(1, 4), entry(2, 4)}

	snap := Snapshot(entry(0, 4), history, nil, models.Settings{}, today)
	if snap.CurrentStreak != 3 {
		t.Errorf("expected streak 3, got %d", snap.CurrentStreak)
	}
	if snap.MissedDays != 0 {
		t.Errorf("expected 0 missed days, got %d", snap.MissedDays)
	}

	full := WithToday(entry(0, 4), history)
	if len(full) != 3 || full[0].Date != entry(0, 0).Date {
		t.Fatalf("expected today first and tomorrow dropped, got %d rows starting %s", len(full), full[0].Date)
	}
	if got := LongestStreak(full); got != 3 {
		t.Errorf("expected longest streak 3, got %d", got)
	}
}

func TestEvaluate(t *testing.T) {
	history := []models.DailyEntry{entry(0, 4), entry(1, 4), entry(2, 3), entry(3, 0)}
	history[0].JobApplications = 30
	history[1].JobApplications = 25

	defs := []models.Achievement{
		models.StreakAchievement{Days: 3},
		models.StreakAchievement{Days: 7},
		models.TotalAchievement{Metric: models.MetricBeastModeDays, Threshold: 2},
		models.TotalAchievement{Metric: models.MetricJobApplications, Threshold: 50},
		models.TotalAchievement{Metric: models.MetricStudyHours, Threshold: 1},
		models.CustomAchievement{Name: "First interview"},
	}

	got := Evaluate(history, defs)
	var titles []string
	for _, a := range got {
		titles = append(titles, a.Title())
	}

	want := []string{"3-Day Streak", "2 Beast Mode Days", "50 Applications Sent", "First interview"}
	if len(titles) != len(want) {
		t.Fatalf("expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, titles[i])
		}
	}
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(entry(0, 4), []models.DailyEntry{entry(1, 4)}, nil, models.Settings{}, models.BuiltinAchievements, today)
	if r.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", r.LongestStreak)
	}
	if r.Totals.BeastModeDays != 2 {
		t.Errorf("expected 2 beast mode days, got %d", r.Totals.BeastModeDays)
	}
	if len(r.Achievements) == 0 || r.Achievements[0] != "1 Beast Mode Days" {
		t.Errorf("expected first beast mode day achievement, got %v", r.Achievements)
	}
}
