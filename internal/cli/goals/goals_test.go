package goals

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	now := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	return &cli.Context{Store: store, Out: &out, Now: func() time.Time { return now }}, &out
}

func onlyGoal(t *testing.T, ctx *cli.Context) models.Goal {
	t.Helper()
	goals, err := ctx.Store.ListGoals(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	return goals[0]
}

func TestGoalAddAndSet(t *testing.T) {
	ctx, out := setupTestDB(t)

	add := &GoalAddCmd{Title: "Emergency fund", Target: 1000, Current: 100, Category: "finance", Due: "2025-12-31"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("goal add failed: %v", err)
	}
	g := onlyGoal(t, ctx)
	if g.ProgressPercentage() != 10 || g.TargetDate != "2025-12-31" {
		t.Errorf("unexpected goal %+v", g)
	}

	current := 550.0
	if err := (&GoalSetCmd{ID: g.ID, Current: &current}).Run(ctx); err != nil {
		t.Fatalf("goal set failed: %v", err)
	}
	if got := onlyGoal(t, ctx); got.CurrentValue != 550 || got.Title != "Emergency fund" {
		t.Errorf("partial update lost fields: %+v", got)
	}
	if !strings.Contains(out.String(), "55%") {
		t.Errorf("expected progress in output, got %q", out.String())
	}

	out.Reset()
	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[finance]") || !strings.Contains(out.String(), "due 2025-12-31") {
		t.Errorf("unexpected list output %q", out.String())
	}
}

func TestGoalErrors(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&GoalAddCmd{Title: "Nothing", Target: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero target")
	}
	if err := (&GoalAddCmd{Title: "Bad date", Target: 1, Due: "soon"}).Run(ctx); err == nil {
		t.Error("expected error for malformed due date")
	}

	v := 1.0
	if err := (&GoalSetCmd{ID: "missing", Current: &v}).Run(ctx); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found, got %v", err)
	}

	if err := (&GoalAddCmd{Title: "Run", Target: 10}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	g := onlyGoal(t, ctx)
	if err := (&GoalSetCmd{ID: g.ID}).Run(ctx); err == nil {
		t.Error("expected error when nothing changes")
	}
	neg := -5.0
	if err := (&GoalSetCmd{ID: g.ID, Current: &neg}).Run(ctx); err == nil {
		t.Error("expected validation error for negative value")
	}
	if got := onlyGoal(t, ctx); got.CurrentValue != 0 {
		t.Errorf("invalid update must not be stored, got %v", got.CurrentValue)
	}
}

func TestAchievements(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&AchievementAddCmd{Kind: "custom", Name: "First interview"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&AchievementAddCmd{Kind: "streak", Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero-day streak")
	}
	if err := (&AchievementAddCmd{Kind: "total", Metric: "pushups", Threshold: 10}).Run(ctx); err == nil {
		t.Error("expected error for unknown metric")
	}

	bg := context.Background()
	e, err := ctx.Store.CreateEntry(bg, "2025-03-11")
	if err != nil {
		t.Fatal(err)
	}
	all := true
	patch := models.EntryPatch{SessionMorning: &all, SessionMidday: &all, SessionEvening: &all, SessionBedtime: &all}
	if _, err := ctx.Store.UpdateEntry(bg, e.ID, patch); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&AchievementListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out.String(), "\n")
	var firstBeast, custom, streak3 string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "First interview"):
			custom = l
		case strings.Contains(l, "3-Day Streak"):
			streak3 = l
		case firstBeast == "" && strings.HasPrefix(l, "[✓]"):
			firstBeast = l
		}
	}
	if !strings.HasPrefix(custom, "[✓]") {
		t.Errorf("custom achievements are unlocked once defined, got %q", custom)
	}
	if !strings.HasPrefix(streak3, "[ ]") {
		t.Errorf("3-day streak should be locked, got %q", streak3)
	}
	if firstBeast == "" {
		t.Error("expected the first beast-mode day to be unlocked")
	}
}
