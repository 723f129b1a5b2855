package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/beastmode/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHistory:
		content = m.history.View()
	case StateGoals:
		content = m.goals.View()
	}

	parts := []string{m.viewTabs()}
	if m.dash.Demo() {
		parts = append(parts, bannerStyle.Render("DEMO DATA: storage unavailable, changes are not saved"))
	}
	parts = append(parts, docStyle.Render(content))
	if m.err != nil {
		parts = append(parts, errorStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, mutedStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	today := m.report.Today
	p := m.report.Progress
	settings := m.dash.Settings()

	var b strings.Builder
	greeting := "Today"
	if p.UserName != "" {
		greeting = "Hey " + p.UserName
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		headerStyle.Render(greeting), mutedStyle.Render(today.Date), statusBadge(today.DailyStatus))

	for i, s := range models.Sessions {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		name := string(s)
		if today.SessionDone(s) {
			check = doneStyle.Render("[x]")
			name = doneStyle.Render(name)
		}
		line := fmt.Sprintf("%s%d. %s %-8s", cursor, i+1, check, name)
		if r := settings.ReminderFor(s); r != "" {
			line += " " + mutedStyle.Render(r)
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\nCompletion   %d%% (%d/%d)\n", p.CompletionPercent(), p.CompletedTasks, p.TotalTasks)
	fmt.Fprintf(&b, "Streak       %d day(s), longest %d\n", p.CurrentStreak, m.report.LongestStreak)
	fmt.Fprintf(&b, "Missed       %d day(s)\n", p.MissedDays)
	fmt.Fprintf(&b, "Averages     week %.1f%%  month %.1f%%  year %.1f%%\n",
		m.report.Averages.Weekly, m.report.Averages.Monthly, m.report.Averages.Yearly)
	if p.FamilyGoal != "" {
		fmt.Fprintf(&b, "Goal         %s (%d%%, %d day(s) left)\n", p.FamilyGoal, p.GoalProgress, p.DaysRemaining)
	}
	return b.String()
}
