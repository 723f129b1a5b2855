// Package progress derives completion, streak and rolling-average metrics from
// a user's daily entry history. All functions are pure; callers pass the
// history explicitly, most recent entry first.
package progress

import (
	"math"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

// CompletionPercentage is 25 times the number of completed sessions.
func CompletionPercentage(e models.DailyEntry) int {
	return e.CompletedSessions() * constants.PercentPerSession
}

// Status derives the three-tier daily label from the session flags.
func Status(e models.DailyEntry) models.DailyStatus {
	switch n := e.CompletedSessions(); {
	case n == constants.SessionsPerDay:
		return models.StatusBeastMode
	case n > 0:
		return models.StatusInProgress
	default:
		return models.StatusWeaknessAlert
	}
}

// day is an entry paired with its parsed date.
type day struct {
	date  time.Time
	entry models.DailyEntry
}

// parseHistory drops entries whose date cannot be parsed and keeps the order.
func parseHistory(history []models.DailyEntry) []day {
	days := make([]day, 0, len(history))
	for _, e := range history {
		d, err := e.Day()
		if err != nil {
			continue
		}
		days = append(days, day{date: d, entry: e})
	}
	return days
}

// daysBetween counts calendar days from b to a (a later than b gives a positive result).
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

func maintained(e models.DailyEntry) bool {
	return CompletionPercentage(e) >= constants.StreakThreshold
}

// CurrentStreak counts consecutive calendar days, starting at the most recent
// entry, whose completion is at least 75%. A failing day or a missing date ends it.
func CurrentStreak(history []models.DailyEntry) int {
	streak := 0
	var prev time.Time
	for _, d := range parseHistory(history) {
		if streak > 0 {
			gap := daysBetween(prev, d.date)
			if gap == 0 {
				// duplicate row for a day already counted
				continue
			}
			if gap != 1 {
				break
			}
		}
		if !maintained(d.entry) {
			break
		}
		streak++
		prev = d.date
	}
	return streak
}

// LongestStreak is the best run of maintained days anywhere in the history.
func LongestStreak(history []models.DailyEntry) int {
	best, run := 0, 0
	var prev time.Time
	for _, d := range parseHistory(history) {
		if run > 0 && daysBetween(prev, d.date) == 0 {
			continue
		}
		switch {
		case !maintained(d.entry):
			run = 0
		case run > 0 && daysBetween(prev, d.date) == 1:
			run++
		default:
			run = 1
		}
		prev = d.date
		best = max(best, run)
	}
	return best
}

// MissedDays counts consecutive zero-completion days walking backward from
// yesterday. Entries dated today or later are ignored; a nonzero day or a
// missing date stops the count.
func MissedDays(history []models.DailyEntry, today time.Time) int {
	missed := 0
	expected := today.AddDate(0, 0, -1)
	for _, d := range parseHistory(history) {
		if daysBetween(today, d.date) <= 0 {
			continue
		}
		gap := daysBetween(expected, d.date)
		if gap < 0 {
			// already counted this day
			continue
		}
		if gap > 0 || CompletionPercentage(d.entry) != 0 {
			break
		}
		missed++
		expected = expected.AddDate(0, 0, -1)
	}
	return missed
}

// RollingAverage is the mean completion of entries dated on or after
// windowStart. It is 0 when nothing falls in the window.
func RollingAverage(entries []models.DailyEntry, windowStart time.Time) float64 {
	total, n := 0, 0
	for _, d := range parseHistory(entries) {
		if daysBetween(d.date, windowStart) < 0 {
			continue
		}
		total += CompletionPercentage(d.entry)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// WeekStart returns midnight of the Sunday on or before now.
func WeekStart(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// Averages holds the weekly, monthly and yearly rolling completion.
type Averages struct {
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

func ComputeAverages(entries []models.DailyEntry, now time.Time) Averages {
	return Averages{
		Weekly:  RollingAverage(entries, WeekStart(now)),
		Monthly: RollingAverage(entries, MonthStart(now)),
		Yearly:  RollingAverage(entries, YearStart(now)),
	}
}
