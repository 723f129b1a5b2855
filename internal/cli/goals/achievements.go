package goals

import (
	"context"
	"fmt"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/progress"
	"github.com/julianstephens/beastmode/internal/storage"
)

type AchievementAddCmd struct {
	Kind      string  `arg:"" enum:"streak,total,custom" help:"Achievement kind: streak, total or custom."`
	Days      int     `help:"Streak length in days (streak)."`
	Metric    string  `help:"Counter to track (total): beast_mode_days, job_applications, study_hours."`
	Threshold float64 `help:"Counter value to reach (total)."`
	Name      string  `help:"Title (custom)."`
	Detail    string  `help:"Description (custom)."`
}

func (c *AchievementAddCmd) Run(ctx *cli.Context) error {
	var a models.Achievement
	switch models.AchievementKind(c.Kind) {
	case models.KindStreak:
		a = models.StreakAchievement{Days: c.Days}
	case models.KindTotal:
		a = models.TotalAchievement{Metric: models.TotalMetric(c.Metric), Threshold: c.Threshold}
	default:
		a = models.CustomAchievement{Name: c.Name, Detail: c.Detail}
	}

	id, err := ctx.Store.AddAchievement(context.Background(), a)
	if err != nil {
		return fmt.Errorf("failed to add achievement: %w", err)
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ Added achievement %q (%s)\n", a.Title(), id)
	return nil
}

type AchievementListCmd struct{}

func (c *AchievementListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	defs, err := storage.AllAchievements(bg, ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to list achievements: %w", err)
	}
	history, err := ctx.Store.ListRecentEntries(bg, constants.MaxHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	unlocked := make(map[models.Achievement]bool)
	for _, a := range progress.Evaluate(history, defs) {
		unlocked[a] = true
	}
	for _, a := range defs {
		mark := " "
		if unlocked[a] {
			mark = "✓"
		}
		ctx.Printf("[%s] %-28s %s\n", mark, a.Title(), a.Description())
	}
	return nil
}
