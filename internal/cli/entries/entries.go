package entries

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/dashboard"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard(context.Background())
	if err != nil {
		return err
	}
	warnDemo(ctx, dash)

	today := dash.Today()
	settings := dash.Settings()
	ctx.Printf("%s  %s  %d%%\n\n", today.Date, today.DailyStatus.Label(), today.CompletionPercentage)
	for i, s := range models.Sessions {
		mark := " "
		if today.SessionDone(s) {
			mark = "x"
		}
		ctx.Printf("  %d. [%s] %-8s %s\n", i+1, mark, s, settings.ReminderFor(s))
	}

	p := dash.Progress(ctx.Time()).Progress
	ctx.Printf("\nStreak: %d days   Missed: %d days\n", p.CurrentStreak, p.MissedDays)
	if p.DaysRemaining > 0 {
		ctx.Printf("%d days until %s\n", p.DaysRemaining, orDefault(p.FamilyGoal, "the target date"))
	}
	return nil
}

type MarkCmd struct {
	Session string `arg:"" help:"Session to check off: morning, midday, evening, bedtime or 1-4."`
	Date    string `help:"Day to update (YYYY-MM-DD). Defaults to today."`
	Undo    bool   `help:"Uncheck the session instead."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	session, err := models.ParseSession(strings.ToLower(c.Session))
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	e, err := apply(ctx, date, models.SessionPatch(session, !c.Undo))
	if err != nil {
		return err
	}

	verb := "Completed"
	if c.Undo {
		verb = "Unchecked"
	}
	ctx.Printf("✓ %s %s session for %s: %d%% (%s)\n", verb, session, e.Date, e.CompletionPercentage, e.DailyStatus.Label())
	return nil
}

type HistoryCmd struct {
	Limit int `help:"Number of days to show." default:"14"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Limit <= 0 || c.Limit > constants.MaxHistoryLimit {
		return fmt.Errorf("limit must be between 1 and %d", constants.MaxHistoryLimit)
	}
	list, err := ctx.Store.ListRecentEntries(context.Background(), c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No entries yet. Check off a session with 'beastmode mark morning'.")
		return nil
	}
	for _, e := range list {
		ctx.Printf("%s  %s  %3d%%  %s\n", e.Date, SessionBar(e), e.CompletionPercentage, e.DailyStatus.Label())
	}
	return nil
}

type StatsCmd struct {
	JSON bool `help:"Print the full progress report as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.LoadDashboard(context.Background())
	if err != nil {
		return err
	}
	report := dash.Progress(ctx.Time())

	if c.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	warnDemo(ctx, dash)
	p := report.Progress
	ctx.Println("Streaks:")
	ctx.Printf("  Current:  %d days\n", p.CurrentStreak)
	ctx.Printf("  Longest:  %d days\n", report.LongestStreak)
	ctx.Printf("  Missed:   %d days\n", p.MissedDays)
	ctx.Println("\nAverage completion:")
	ctx.Printf("  Week:     %.1f%%\n", report.Averages.Weekly)
	ctx.Printf("  Month:    %.1f%%\n", report.Averages.Monthly)
	ctx.Printf("  Year:     %.1f%%\n", report.Averages.Yearly)
	ctx.Println("\nTotals:")
	ctx.Printf("  Beast mode days:   %d\n", report.Totals.BeastModeDays)
	ctx.Printf("  Job applications:  %d\n", report.Totals.JobApplications)
	ctx.Printf("  Study hours:       %.1f\n", report.Totals.StudyHours)
	ctx.Printf("\nGoals: %d%% complete\n", p.GoalProgress)
	if p.DaysRemaining > 0 {
		ctx.Printf("Days remaining: %d\n", p.DaysRemaining)
	}
	if len(report.Achievements) > 0 {
		ctx.Printf("Achievements: %s\n", strings.Join(report.Achievements, ", "))
	}
	return nil
}

// apply writes patch to the entry for date. Today's entry goes through the
// dashboard so derived state stays in one place.
func apply(ctx *cli.Context, date string, patch models.EntryPatch) (models.DailyEntry, error) {
	if err := patch.Validate(); err != nil {
		return models.DailyEntry{}, err
	}
	bg := context.Background()
	dash, err := ctx.LoadDashboard(bg)
	if err != nil {
		return models.DailyEntry{}, err
	}
	warnDemo(ctx, dash)

	var e models.DailyEntry
	if date == dash.Today().Date {
		e, err = dash.Update(bg, patch)
	} else {
		e, err = storage.EntryOrCreate(bg, dash.Store(), date)
		if err == nil {
			e, err = dash.Store().UpdateEntry(bg, e.ID, patch)
		}
	}
	if err != nil {
		return models.DailyEntry{}, fmt.Errorf("failed to update entry: %w", err)
	}
	if !dash.Demo() {
		ctx.PerformAutomaticBackup()
	}
	return e, nil
}

func warnDemo(ctx *cli.Context, dash *dashboard.Dashboard) {
	if dash.Demo() {
		ctx.Printf("⚠ Demo mode (%v). Changes are not saved.\n\n", dash.Err())
	}
}

// SessionBar renders the four sessions as filled or empty boxes.
func SessionBar(e models.DailyEntry) string {
	var b strings.Builder
	for _, s := range models.Sessions {
		if e.SessionDone(s) {
			b.WriteString("■")
		} else {
			b.WriteString("□")
		}
	}
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
