package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage"
)

type GoalAddCmd struct {
	Title    string  `arg:"" help:"Goal title."`
	Target   float64 `required:"" help:"Target value."`
	Current  float64 `help:"Current value." default:"0"`
	Category string  `help:"Category, e.g. finance or career."`
	Due      string  `help:"Target date (YYYY-MM-DD)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	now := ctx.Time()
	g := models.Goal{
		ID:           uuid.New().String(),
		Title:        c.Title,
		Category:     c.Category,
		TargetValue:  c.Target,
		CurrentValue: c.Current,
		TargetDate:   c.Due,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ctx.Store.AddGoal(context.Background(), g); err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ Added goal %q (%s)\n", g.Title, g.ID)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Store.ListGoals(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	if len(goals) == 0 {
		ctx.Println("No goals yet. Add one with 'beastmode goal add'.")
		return nil
	}
	for _, g := range goals {
		line := fmt.Sprintf("%-36s  %-24s %3d%%  %g/%g", g.ID, g.Title, g.ProgressPercentage(), g.CurrentValue, g.TargetValue)
		if g.Category != "" {
			line += "  [" + g.Category + "]"
		}
		if g.TargetDate != "" {
			line += "  due " + g.TargetDate
		}
		ctx.Println(line)
	}
	return nil
}

type GoalSetCmd struct {
	ID       string   `arg:"" help:"Goal ID."`
	Title    *string  `help:"New title."`
	Category *string  `help:"New category."`
	Target   *float64 `help:"New target value."`
	Current  *float64 `help:"New current value."`
	Due      *string  `help:"New target date (YYYY-MM-DD), empty to clear."`
}

func (c *GoalSetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	g, err := ctx.Store.GetGoal(bg, c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("goal not found: %s", c.ID)
	}
	if err != nil {
		return err
	}

	patch := models.GoalPatch{
		Title:        c.Title,
		Category:     c.Category,
		TargetValue:  c.Target,
		CurrentValue: c.Current,
		TargetDate:   c.Due,
	}
	if patch == (models.GoalPatch{}) {
		return fmt.Errorf("no changes specified")
	}
	if err := patch.Apply(&g); err != nil {
		return err
	}
	g.UpdatedAt = ctx.Time()
	if err := ctx.Store.UpdateGoal(bg, g); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	ctx.PerformAutomaticBackup()
	ctx.Printf("✓ %s: %d%% (%g/%g)\n", g.Title, g.ProgressPercentage(), g.CurrentValue, g.TargetValue)
	return nil
}
