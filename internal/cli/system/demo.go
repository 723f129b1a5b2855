package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/cli/entries"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/dashboard"
	"github.com/julianstephens/beastmode/internal/demo"
)

// DemoCmd previews the synthetic history the dashboard falls back to.
type DemoCmd struct {
	Seed int64 `help:"Random seed; the same seed always yields the same history." default:"${demo_seed}"`
	Days int   `help:"Days of history to generate." default:"${demo_days}"`
	Show int   `help:"Number of recent days to print." default:"14"`
}

func (c *DemoCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 || c.Days > constants.MaxHistoryLimit {
		return fmt.Errorf("days must be between 1 and %d", constants.MaxHistoryLimit)
	}
	bg := context.Background()
	now := ctx.Time()

	mem, err := demo.NewStore(bg, c.Seed, now, c.Days)
	if err != nil {
		return fmt.Errorf("failed to build demo data: %w", err)
	}
	dash := dashboard.New(mem)
	if err := dash.Load(bg, now); err != nil {
		return err
	}

	ctx.Printf("Demo history (seed %d, %d days)\n\n", c.Seed, c.Days)
	history := dash.History()
	for _, e := range history[:min(c.Show, len(history))] {
		ctx.Printf("%s  %s  %3d%%  %s\n", e.Date, entries.SessionBar(e), e.CompletionPercentage, e.DailyStatus.Label())
	}

	report := dash.Progress(now)
	ctx.Printf("\nStreak %d (longest %d), missed %d, week %.1f%%, month %.1f%%, year %.1f%%\n",
		report.Progress.CurrentStreak, report.LongestStreak, report.Progress.MissedDays,
		report.Averages.Weekly, report.Averages.Monthly, report.Averages.Yearly)
	return nil
}
