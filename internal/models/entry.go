package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
)

// Session identifies one of the four daily check-in slots.
type Session string

const (
	SessionMorning Session = "morning"
	SessionMidday  Session = "midday"
	SessionEvening Session = "evening"
	SessionBedtime Session = "bedtime"
)

// Sessions lists the daily sessions in chronological order.
var Sessions = []Session{SessionMorning, SessionMidday, SessionEvening, SessionBedtime}

// ParseSession accepts a session name or its 1-based index.
func ParseSession(s string) (Session, error) {
	switch s {
	case "1", string(SessionMorning):
		return SessionMorning, nil
	case "2", string(SessionMidday):
		return SessionMidday, nil
	case "3", string(SessionEvening):
		return SessionEvening, nil
	case "4", string(SessionBedtime):
		return SessionBedtime, nil
	}
	return "", fmt.Errorf("invalid session: %q (expected morning, midday, evening or bedtime)", s)
}

// DailyStatus is the three-tier label derived from the number of completed sessions.
type DailyStatus string

const (
	StatusWeaknessAlert DailyStatus = "weakness_alert"
	StatusInProgress    DailyStatus = "in_progress"
	StatusBeastMode     DailyStatus = "beast_mode"
)

// Label returns the display text for the status.
func (s DailyStatus) Label() string {
	switch s {
	case StatusBeastMode:
		return "BEAST MODE"
	case StatusInProgress:
		return "IN PROGRESS"
	default:
		return "WEAKNESS ALERT"
	}
}

type BurnoutLevel string

const (
	BurnoutLow    BurnoutLevel = "Low"
	BurnoutMedium BurnoutLevel = "Medium"
	BurnoutHigh   BurnoutLevel = "High"
)

type AngerFrequency string

const (
	AngerNone  AngerFrequency = "None"
	AngerOnce  AngerFrequency = "1x"
	AngerTwice AngerFrequency = "2x"
	AngerOften AngerFrequency = "Often"
)

type MoodSwings string

const (
	MoodSwingsNone   MoodSwings = "None"
	MoodSwingsMild   MoodSwings = "Mild"
	MoodSwingsStrong MoodSwings = "Strong"
)

type MoneyStressLevel string

const (
	MoneyStressNone     MoneyStressLevel = "None"
	MoneyStressModerate MoneyStressLevel = "Moderate"
	MoneyStressHigh     MoneyStressLevel = "High"
)

// DailyEntry is the record for one calendar day.
type DailyEntry struct {
	ID   string `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD format

	SessionMorning bool `json:"session_1_morning"`
	SessionMidday  bool `json:"session_2_midday"`
	SessionEvening bool `json:"session_3_evening"`
	SessionBedtime bool `json:"session_4_bedtime"`

	FocusRating    *int `json:"focus_rating,omitempty"`
	EnergyRating   *int `json:"energy_rating,omitempty"`
	HealthRating   *int `json:"health_rating,omitempty"`
	EmotionalState *int `json:"emotional_state,omitempty"`

	BurnoutLevel     BurnoutLevel     `json:"burnout_level,omitempty"`
	AngerFrequency   AngerFrequency   `json:"anger_frequency,omitempty"`
	MoodSwings       MoodSwings       `json:"mood_swings,omitempty"`
	MoneyStressLevel MoneyStressLevel `json:"money_stress_level,omitempty"`

	JobApplications int     `json:"job_applications"`
	StudyHours      float64 `json:"study_hours"`

	MorningNotes   string `json:"morning_notes,omitempty"`
	MiddayNotes    string `json:"midday_notes,omitempty"`
	EveningNotes   string `json:"evening_notes,omitempty"`
	BedtimeNotes   string `json:"bedtime_notes,omitempty"`
	GratitudeEntry string `json:"gratitude_entry,omitempty"`

	// Derived from the session flags by Recompute.
	CompletionPercentage int         `json:"completion_percentage"`
	DailyStatus          DailyStatus `json:"daily_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntry returns an empty, consistent entry for the given day.
func NewEntry(id, date string, now time.Time) DailyEntry {
	e := DailyEntry{
		ID:        id,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Recompute()
	return e
}

// CompletedSessions counts the session flags that are set.
func (e DailyEntry) CompletedSessions() int {
	n := 0
	for _, done := range []bool{e.SessionMorning, e.SessionMidday, e.SessionEvening, e.SessionBedtime} {
		if done {
			n++
		}
	}
	return n
}

// SessionDone reports whether the given session is checked off.
func (e DailyEntry) SessionDone(s Session) bool {
	switch s {
	case SessionMorning:
		return e.SessionMorning
	case SessionMidday:
		return e.SessionMidday
	case SessionEvening:
		return e.SessionEvening
	case SessionBedtime:
		return e.SessionBedtime
	}
	return false
}

// SetSession sets a session flag and recomputes derived fields.
func (e *DailyEntry) SetSession(s Session, done bool) {
	switch s {
	case SessionMorning:
		e.SessionMorning = done
	case SessionMidday:
		e.SessionMidday = done
	case SessionEvening:
		e.SessionEvening = done
	case SessionBedtime:
		e.SessionBedtime = done
	}
	e.Recompute()
}

// Recompute refreshes CompletionPercentage and DailyStatus from the session flags.
func (e *DailyEntry) Recompute() {
	n := e.CompletedSessions()
	e.CompletionPercentage = n * constants.PercentPerSession
	switch {
	case n == constants.SessionsPerDay:
		e.DailyStatus = StatusBeastMode
	case n > 0:
		e.DailyStatus = StatusInProgress
	default:
		e.DailyStatus = StatusWeaknessAlert
	}
}

// Day parses the entry date.
func (e DailyEntry) Day() (time.Time, error) {
	return time.Parse(constants.DateFormat, e.Date)
}

// Normalize clamps ratings to [1,10] and counters to non-negative values.
func (e *DailyEntry) Normalize() {
	for _, r := range []*int{e.FocusRating, e.EnergyRating, e.HealthRating, e.EmotionalState} {
		if r != nil {
			*r = ClampRating(*r)
		}
	}
	if e.JobApplications < 0 {
		e.JobApplications = 0
	}
	if e.StudyHours < 0 {
		e.StudyHours = 0
	}
	e.Recompute()
}

// ClampRating maps any value onto the nearest valid rating.
func ClampRating(v int) int {
	if v < constants.MinRating {
		return constants.MinRating
	}
	if v > constants.MaxRating {
		return constants.MaxRating
	}
	return v
}
