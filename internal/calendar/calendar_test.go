package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/beastmode/internal/models"
)

var now = time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

func settings() models.Settings {
	s := models.DefaultSettings()
	s.Timezone = "UTC"
	s.FamilyGoal = "the new house"
	s.TargetDate = "2025-03-22"
	return s
}

func TestBuildSessions(t *testing.T) {
	ics := Build(settings(), nil, now)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Fatalf("calendar not wrapped in VCALENDAR:\n%s", ics)
	}
	if strings.Contains(strings.ReplaceAll(ics, "\r\n", ""), "\n") {
		t.Error("every line must end with CRLF")
	}
	if n := strings.Count(ics, "RRULE:FREQ=DAILY"); n != 4 {
		t.Errorf("expected 4 recurring sessions, got %d", n)
	}
	if n := strings.Count(ics, "BEGIN:VALARM"); n != 4 {
		t.Errorf("expected 4 alarms, got %d", n)
	}
	for _, want := range []string{
		"DTSTART:20250312T070000Z",
		"DTEND:20250312T071500Z",
		"DTSTART:20250312T123000Z",
		"DTSTART:20250312T220000Z",
		"DTSTAMP:20250312T093000Z",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestBuildMilestone(t *testing.T) {
	ics := Build(settings(), nil, now)
	for _, want := range []string{
		"DTSTART;VALUE=DATE:20250322",
		"DTEND;VALUE=DATE:20250323",
		"SUMMARY:Target: the new house",
		"DESCRIPTION:10 days remaining",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("missing %q", want)
		}
	}

	s := settings()
	s.TargetDate = ""
	if strings.Contains(Build(s, nil, now), "days remaining") {
		t.Error("no milestone expected without a target date")
	}
}

func TestBuildTimezone(t *testing.T) {
	s := settings()
	s.Timezone = "America/New_York"
	ics := Build(s, nil, now)
	// 07:00 EDT on 2025-03-12 is 11:00 UTC.
	if !strings.Contains(ics, "DTSTART:20250312T110000Z") {
		t.Errorf("expected reminder converted to UTC:\n%s", ics)
	}
}

func TestBuildGoals(t *testing.T) {
	goals := []models.Goal{
		{ID: "g1", Title: "Fund, phase 1", TargetValue: 1000, CurrentValue: 250, TargetDate: "2025-06-01"},
		{ID: "g2", Title: "Undated", TargetValue: 10},
	}
	ics := Build(settings(), goals, now)
	if !strings.Contains(ics, `SUMMARY:Goal: Fund\, phase 1`) {
		t.Error("goal summary should be escaped")
	}
	if !strings.Contains(ics, "UID:goal-g1@beastmode") || strings.Contains(ics, "goal-g2") {
		t.Error("only dated goals become events")
	}
	if !strings.Contains(ics, "25% complete") {
		t.Error("expected goal progress in description")
	}
}

func TestLineFolding(t *testing.T) {
	s := settings()
	s.FamilyGoal = strings.Repeat("long goal text ", 10)
	ics := Build(s, nil, now)
	for _, l := range strings.Split(ics, "\r\n") {
		if len(l) > maxLine {
			t.Errorf("line exceeds %d octets: %q", maxLine, l)
		}
	}
	if !strings.Contains(ics, "\r\n ") {
		t.Error("expected a folded continuation line")
	}
}
