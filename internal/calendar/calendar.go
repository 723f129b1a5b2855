// Package calendar exports reminders and milestones as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/progress"
)

const (
	utcLayout  = "20060102T150405Z"
	dateLayout = "20060102"
	maxLine    = 75
	sessionLen = 15 * time.Minute
)

var sessionTitles = map[models.Session]string{
	models.SessionMorning: "Morning session",
	models.SessionMidday:  "Midday session",
	models.SessionEvening: "Evening session",
	models.SessionBedtime: "Bedtime session",
}

// writer accumulates content lines, folding and terminating them with CRLF.
type writer struct {
	b strings.Builder
}

func (w *writer) line(name, value string) {
	l := name + ":" + value
	// Continuation lines carry a leading space.
	for limit := maxLine; len(l) > limit; limit = maxLine - 1 {
		cut := limit
		// Never split a UTF-8 sequence.
		for cut > 0 && l[cut]&0xC0 == 0x80 {
			cut--
		}
		w.b.WriteString(l[:cut])
		w.b.WriteString("\r\n ")
		l = l[cut:]
	}
	w.b.WriteString(l)
	w.b.WriteString("\r\n")
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`).Replace(s)
}

// Build renders a VCALENDAR holding one daily recurring event per session,
// starting on now's date at the configured reminder time, plus all-day events
// for the countdown target and each dated goal.
func Build(settings models.Settings, goals []models.Goal, now time.Time) string {
	loc := settings.Location()
	local := now.In(loc)
	stamp := now.UTC().Format(utcLayout)

	w := &writer{}
	w.line("BEGIN", "VCALENDAR")
	w.line("VERSION", "2.0")
	w.line("PRODID", "-//"+constants.AppName+"//"+constants.Version+"//EN")
	w.line("CALSCALE", "GREGORIAN")
	w.line("X-WR-CALNAME", "Beast Mode")

	for i, s := range models.Sessions {
		at, err := time.Parse(constants.TimeFormat, settings.ReminderFor(s))
		if err != nil {
			continue
		}
		start := time.Date(local.Year(), local.Month(), local.Day(), at.Hour(), at.Minute(), 0, 0, loc)
		w.line("BEGIN", "VEVENT")
		w.line("UID", fmt.Sprintf("session-%s@%s", s, constants.AppName))
		w.line("DTSTAMP", stamp)
		w.line("DTSTART", start.UTC().Format(utcLayout))
		w.line("DTEND", start.Add(sessionLen).UTC().Format(utcLayout))
		w.line("RRULE", "FREQ=DAILY")
		w.line("SUMMARY", escape(fmt.Sprintf("%s (%d/%d)", sessionTitles[s], i+1, constants.SessionsPerDay)))
		w.line("DESCRIPTION", escape(fmt.Sprintf("Check in with beastmode: mark %s done.", s)))
		w.line("BEGIN", "VALARM")
		w.line("ACTION", "DISPLAY")
		w.line("DESCRIPTION", escape(sessionTitles[s]))
		w.line("TRIGGER", "PT0M")
		w.line("END", "VALARM")
		w.line("END", "VEVENT")
	}

	if target, err := time.Parse(constants.DateFormat, settings.TargetDate); err == nil {
		summary := "Target date"
		if settings.FamilyGoal != "" {
			summary = "Target: " + settings.FamilyGoal
		}
		days := progress.DaysRemaining(now, settings.TargetDate)
		allDay(w, "target@"+constants.AppName, stamp, target, summary, fmt.Sprintf("%d days remaining", days))
	}

	for _, g := range goals {
		target, err := time.Parse(constants.DateFormat, g.TargetDate)
		if err != nil {
			continue
		}
		desc := fmt.Sprintf("%d%% complete (%g of %g)", g.ProgressPercentage(), g.CurrentValue, g.TargetValue)
		allDay(w, "goal-"+g.ID+"@"+constants.AppName, stamp, target, "Goal: "+g.Title, desc)
	}

	w.line("END", "VCALENDAR")
	return w.b.String()
}

func allDay(w *writer, uid, stamp string, day time.Time, summary, desc string) {
	w.line("BEGIN", "VEVENT")
	w.line("UID", uid)
	w.line("DTSTAMP", stamp)
	w.line("DTSTART;VALUE=DATE", day.Format(dateLayout))
	w.line("DTEND;VALUE=DATE", day.AddDate(0, 0, 1).Format(dateLayout))
	w.line("SUMMARY", escape(summary))
	w.line("DESCRIPTION", escape(desc))
	w.line("TRANSP", "TRANSPARENT")
	w.line("END", "VEVENT")
}
