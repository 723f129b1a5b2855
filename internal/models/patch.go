package models

import (
	"errors"
	"fmt"

	"github.com/julianstephens/beastmode/internal/constants"
)

// EntryPatch is a partial update to a DailyEntry. Nil fields are left untouched.
type EntryPatch struct {
	SessionMorning *bool `json:"session_1_morning,omitempty"`
	SessionMidday  *bool `json:"session_2_midday,omitempty"`
	SessionEvening *bool `json:"session_3_evening,omitempty"`
	SessionBedtime *bool `json:"session_4_bedtime,omitempty"`

	FocusRating    *int `json:"focus_rating,omitempty"`
	EnergyRating   *int `json:"energy_rating,omitempty"`
	HealthRating   *int `json:"health_rating,omitempty"`
	EmotionalState *int `json:"emotional_state,omitempty"`

	BurnoutLevel     *BurnoutLevel     `json:"burnout_level,omitempty"`
	AngerFrequency   *AngerFrequency   `json:"anger_frequency,omitempty"`
	MoodSwings       *MoodSwings       `json:"mood_swings,omitempty"`
	MoneyStressLevel *MoneyStressLevel `json:"money_stress_level,omitempty"`

	JobApplications *int     `json:"job_applications,omitempty"`
	StudyHours      *float64 `json:"study_hours,omitempty"`

	MorningNotes   *string `json:"morning_notes,omitempty"`
	MiddayNotes    *string `json:"midday_notes,omitempty"`
	EveningNotes   *string `json:"evening_notes,omitempty"`
	BedtimeNotes   *string `json:"bedtime_notes,omitempty"`
	GratitudeEntry *string `json:"gratitude_entry,omitempty"`
}

// SessionPatch builds a patch that only toggles a single session.
func SessionPatch(s Session, done bool) EntryPatch {
	var p EntryPatch
	switch s {
	case SessionMorning:
		p.SessionMorning = &done
	case SessionMidday:
		p.SessionMidday = &done
	case SessionEvening:
		p.SessionEvening = &done
	case SessionBedtime:
		p.SessionBedtime = &done
	}
	return p
}

// IsEmpty reports whether the patch sets nothing.
func (p EntryPatch) IsEmpty() bool {
	return p == EntryPatch{}
}

// Validate rejects values a form should never submit.
func (p EntryPatch) Validate() error {
	var errs []error
	ratings := map[string]*int{
		"focus_rating":    p.FocusRating,
		"energy_rating":   p.EnergyRating,
		"health_rating":   p.HealthRating,
		"emotional_state": p.EmotionalState,
	}
	for name, r := range ratings {
		if r != nil && (*r < constants.MinRating || *r > constants.MaxRating) {
			errs = append(errs, fmt.Errorf("%s must be between %d and %d, got %d", name, constants.MinRating, constants.MaxRating, *r))
		}
	}
	if p.JobApplications != nil && *p.JobApplications < 0 {
		errs = append(errs, fmt.Errorf("job_applications cannot be negative"))
	}
	if p.StudyHours != nil && *p.StudyHours < 0 {
		errs = append(errs, fmt.Errorf("study_hours cannot be negative"))
	}
	if p.BurnoutLevel != nil && !oneOf(*p.BurnoutLevel, BurnoutLow, BurnoutMedium, BurnoutHigh) {
		errs = append(errs, fmt.Errorf("invalid burnout_level: %q", *p.BurnoutLevel))
	}
	if p.AngerFrequency != nil && !oneOf(*p.AngerFrequency, AngerNone, AngerOnce, AngerTwice, AngerOften) {
		errs = append(errs, fmt.Errorf("invalid anger_frequency: %q", *p.AngerFrequency))
	}
	if p.MoodSwings != nil && !oneOf(*p.MoodSwings, MoodSwingsNone, MoodSwingsMild, MoodSwingsStrong) {
		errs = append(errs, fmt.Errorf("invalid mood_swings: %q", *p.MoodSwings))
	}
	if p.MoneyStressLevel != nil && !oneOf(*p.MoneyStressLevel, MoneyStressNone, MoneyStressModerate, MoneyStressHigh) {
		errs = append(errs, fmt.Errorf("invalid money_stress_level: %q", *p.MoneyStressLevel))
	}
	return errors.Join(errs...)
}

// Apply merges the set fields into e and recomputes derived fields.
func (p EntryPatch) Apply(e *DailyEntry) {
	setBool(&e.SessionMorning, p.SessionMorning)
	setBool(&e.SessionMidday, p.SessionMidday)
	setBool(&e.SessionEvening, p.SessionEvening)
	setBool(&e.SessionBedtime, p.SessionBedtime)

	e.FocusRating = mergeInt(e.FocusRating, p.FocusRating)
	e.EnergyRating = mergeInt(e.EnergyRating, p.EnergyRating)
	e.HealthRating = mergeInt(e.HealthRating, p.HealthRating)
	e.EmotionalState = mergeInt(e.EmotionalState, p.EmotionalState)

	if p.BurnoutLevel != nil {
		e.BurnoutLevel = *p.BurnoutLevel
	}
	if p.AngerFrequency != nil {
		e.AngerFrequency = *p.AngerFrequency
	}
	if p.MoodSwings != nil {
		e.MoodSwings = *p.MoodSwings
	}
	if p.MoneyStressLevel != nil {
		e.MoneyStressLevel = *p.MoneyStressLevel
	}
	if p.JobApplications != nil {
		e.JobApplications = *p.JobApplications
	}
	if p.StudyHours != nil {
		e.StudyHours = *p.StudyHours
	}

	setString(&e.MorningNotes, p.MorningNotes)
	setString(&e.MiddayNotes, p.MiddayNotes)
	setString(&e.EveningNotes, p.EveningNotes)
	setString(&e.BedtimeNotes, p.BedtimeNotes)
	setString(&e.GratitudeEntry, p.GratitudeEntry)

	e.Normalize()
}

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// mergeInt copies the patch value so the entry never aliases patch memory.
func mergeInt(cur, v *int) *int {
	if v == nil {
		return cur
	}
	n := *v
	return &n
}
