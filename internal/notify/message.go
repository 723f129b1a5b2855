package notify

import (
	"strconv"
	"strings"

	"github.com/julianstephens/beastmode/internal/models"
)

// Message is the channel-neutral content of a notification.
type Message struct {
	Type  MessageType `json:"type"`
	Tone  string      `json:"tone"` // a Severity or ReminderTier
	Title string      `json:"title"`
	Body  string      `json:"body"`
	// Highlights are short stat lines channels may render as fields.
	Highlights []Highlight `json:"highlights"`
}

type Highlight struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type copyText struct {
	title string
	body  string
}

var reminderTemplates = map[ReminderTier]copyText{
	TierZeroProgress: {
		title: "Zero sessions done, {userName}",
		body:  "Nothing logged yet today. {familyGoal} does not build itself. {daysRemaining} days left on the clock, start with one session now.",
	},
	TierFallingShort: {
		title: "You're falling short today",
		body:  "{completed}/{total} sessions done. Your {currentStreak}-day streak needs 3 of 4 to survive. Finish strong for {familyGoal}.",
	},
	TierGoodProgress: {
		title: "Good progress, keep pushing",
		body:  "{completed}/{total} sessions done and a {currentStreak}-day streak. Goals are {goalProgress}% complete with {daysRemaining} days to go.",
	},
	TierBeastModeDone: {
		title: "BEAST MODE achieved",
		body:  "All {total} sessions done. Streak: {currentStreak} days. This is how {familyGoal} gets built.",
	},
}

var alertTemplates = map[Severity]copyText{
	SeverityGentle: {
		title: "Checking in, {userName}",
		body:  "You've missed {missedDays} days. No judgment, just get one session in today for {familyGoal}.",
	},
	SeverityFirm: {
		title: "{missedDays} days missed",
		body:  "{missedDays} days with zero sessions. {daysRemaining} days remain and goals sit at {goalProgress}%. Time to get back on track.",
	},
	SeverityHarsh: {
		title: "This is becoming a pattern",
		body:  "{missedDays} days of nothing. {familyGoal} is slipping away while the excuses pile up. Only {daysRemaining} days left.",
	},
	SeverityBrutal: {
		title: "WAKE UP: {missedDays} days wasted",
		body:  "{missedDays} straight days of zero. Goals frozen at {goalProgress}%. {familyGoal} is counting on you and you are not showing up. Fix it today.",
	},
}

var celebrationTemplate = copyText{
	title: "Achievement unlocked: {achievement}",
	body:  "{userName}, you earned it. Current streak: {currentStreak} days, goals at {goalProgress}%. Keep going for {familyGoal}.",
}

// Compose picks the tone for t and fills in the template with progress fields.
func Compose(p models.UserProgress, t MessageType, achievement string) Message {
	var tone string
	var tmpl copyText
	switch t {
	case TypeAccountabilityAlert:
		sev := SeverityFromMissedDays(p.MissedDays)
		tone, tmpl = string(sev), alertTemplates[sev]
	case TypeCelebration:
		tone, tmpl = "celebration", celebrationTemplate
		if achievement == "" {
			achievement = "Beast Mode"
		}
	default:
		t = TypeDailyReminder
		tier := ReminderTierFor(p.CompletedTasks, p.TotalTasks)
		tone, tmpl = string(tier), reminderTemplates[tier]
	}

	r := replacer(p, achievement)
	return Message{
		Type:  t,
		Tone:  tone,
		Title: r.Replace(tmpl.title),
		Body:  r.Replace(tmpl.body),
		Highlights: []Highlight{
			{Label: "Today", Value: strconv.Itoa(p.CompletedTasks) + "/" + strconv.Itoa(p.TotalTasks)},
			{Label: "Streak", Value: strconv.Itoa(p.CurrentStreak) + " days"},
			{Label: "Goals", Value: strconv.Itoa(p.GoalProgress) + "%"},
			{Label: "Days Remaining", Value: strconv.Itoa(p.DaysRemaining)},
		},
	}
}

func replacer(p models.UserProgress, achievement string) *strings.Replacer {
	familyGoal := p.FamilyGoal
	if familyGoal == "" {
		familyGoal = "your family's future"
	}
	userName := p.UserName
	if userName == "" {
		userName = "Champion"
	}
	return strings.NewReplacer(
		"{familyGoal}", familyGoal,
		"{missedDays}", strconv.Itoa(p.MissedDays),
		"{daysRemaining}", strconv.Itoa(p.DaysRemaining),
		"{currentStreak}", strconv.Itoa(p.CurrentStreak),
		"{goalProgress}", strconv.Itoa(p.GoalProgress),
		"{completed}", strconv.Itoa(p.CompletedTasks),
		"{total}", strconv.Itoa(p.TotalTasks),
		"{userName}", userName,
		"{achievement}", achievement,
	)
}
