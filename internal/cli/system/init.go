package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized beastmode storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// reset deletes an existing SQLite file. PostgreSQL schemas are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, _ := filepath.Abs(dbPath)
		absSrc, _ := filepath.Abs(c.Source)
		if absDB == absSrc {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	src, err := cli.NewStore(c.Source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	bg := context.Background()
	dst := ctx.Store

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings(bg)
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(bg, settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying entries...")
	entries, err := src.ListEntriesSince(bg, "0001-01-01")
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, e := range entries {
		created, err := dst.CreateEntry(bg, e.Date)
		if err != nil {
			return fmt.Errorf("failed to add entry %s: %w", e.Date, err)
		}
		if _, err := dst.UpdateEntry(bg, created.ID, fullPatch(e)); err != nil {
			return fmt.Errorf("failed to copy entry %s: %w", e.Date, err)
		}
	}
	ctx.Printf("    Copied %d entries\n", len(entries))

	ctx.Println("  Copying goals...")
	goals, err := src.ListGoals(bg)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	for _, g := range goals {
		if err := dst.AddGoal(bg, g); err != nil {
			return fmt.Errorf("failed to add goal %s: %w", g.ID, err)
		}
	}
	ctx.Printf("    Copied %d goals\n", len(goals))

	ctx.Println("  Copying achievements...")
	custom, err := src.ListAchievements(bg)
	if err != nil {
		return fmt.Errorf("failed to get achievements from source: %w", err)
	}
	for _, a := range custom {
		if _, err := dst.AddAchievement(bg, a); err != nil {
			return fmt.Errorf("failed to add achievement %q: %w", a.Title(), err)
		}
	}
	ctx.Printf("    Copied %d achievements\n", len(custom))
	return nil
}

// fullPatch sets every user-editable field of e. Ratings that were never
// recorded stay unset in the copy.
func fullPatch(e models.DailyEntry) models.EntryPatch {
	return models.EntryPatch{
		SessionMorning:   &e.SessionMorning,
		SessionMidday:    &e.SessionMidday,
		SessionEvening:   &e.SessionEvening,
		SessionBedtime:   &e.SessionBedtime,
		FocusRating:      e.FocusRating,
		EnergyRating:     e.EnergyRating,
		HealthRating:     e.HealthRating,
		EmotionalState:   e.EmotionalState,
		BurnoutLevel:     emptyNil(e.BurnoutLevel),
		AngerFrequency:   emptyNil(e.AngerFrequency),
		MoodSwings:       emptyNil(e.MoodSwings),
		MoneyStressLevel: emptyNil(e.MoneyStressLevel),
		JobApplications:  &e.JobApplications,
		StudyHours:       &e.StudyHours,
		MorningNotes:     &e.MorningNotes,
		MiddayNotes:      &e.MiddayNotes,
		EveningNotes:     &e.EveningNotes,
		BedtimeNotes:     &e.BedtimeNotes,
		GratitudeEntry:   &e.GratitudeEntry,
	}
}

func emptyNil[T ~string](v T) *T {
	if v == "" {
		return nil
	}
	return &v
}
