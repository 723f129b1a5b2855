package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage"
	"github.com/julianstephens/beastmode/internal/storage/memory"
	"github.com/julianstephens/beastmode/internal/storage/sqlite"
)

var now = time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)

// brokenStore fails every read so Load falls back to demo data.
type brokenStore struct {
	*memory.Store
}

func (brokenStore) GetEntry(context.Context, string) (models.DailyEntry, error) {
	return models.DailyEntry{}, errors.New("disk I/O error")
}

func TestLoadCreatesToday(t *testing.T) {
	ctx := context.Background()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "beastmode.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	d := New(store)
	if err := d.Load(ctx, now); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Demo() || d.Err() != nil {
		t.Fatalf("unexpected demo mode: %v", d.Err())
	}
	if d.Today().Date != "2025-03-12" {
		t.Errorf("expected today's entry, got %s", d.Today().Date)
	}
	if _, err := store.GetEntry(ctx, "2025-03-12"); err != nil {
		t.Errorf("today's entry should be persisted: %v", err)
	}

	// A second load must not create a duplicate.
	id := d.Today().ID
	if err := d.Load(ctx, now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if d.Today().ID != id {
		t.Errorf("expected the same entry after reload")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	d := New(store)

	if _, err := d.Update(ctx, models.SessionPatch(models.SessionMorning, true)); err == nil {
		t.Error("Update before Load should fail")
	}
	if err := d.Load(ctx, now); err != nil {
		t.Fatal(err)
	}

	for _, s := range []models.Session{models.SessionMorning, models.SessionMidday, models.SessionEvening} {
		if _, err := d.ToggleSession(ctx, s); err != nil {
			t.Fatalf("ToggleSession(%s) failed: %v", s, err)
		}
	}
	if got := d.Today().CompletionPercentage; got != 75 {
		t.Errorf("expected 75%%, got %d", got)
	}
	if h := d.History(); len(h) != 1 || h[0].CompletionPercentage != 75 {
		t.Errorf("history should reflect today's update, got %+v", h)
	}

	r := d.Progress(now)
	if r.Progress.CompletedTasks != 3 || r.Progress.CurrentStreak != 1 {
		t.Errorf("unexpected progress %+v", r.Progress)
	}

	if _, err := d.ToggleSession(ctx, models.SessionEvening); err != nil {
		t.Fatal(err)
	}
	if got := d.Today().CompletionPercentage; got != 50 {
		t.Errorf("toggle should undo, got %d%%", got)
	}
}

func TestLoadFallsBackToDemo(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	if err := mem.Init(); err != nil {
		t.Fatal(err)
	}
	d := New(brokenStore{mem}, WithDemo(7, 30))

	if err := d.Load(ctx, now); err != nil {
		t.Fatalf("Load should recover with demo data: %v", err)
	}
	if !d.Demo() {
		t.Fatal("expected demo mode")
	}
	if d.Err() == nil {
		t.Error("expected the triggering error to be recorded")
	}
	if len(d.History()) < 2 || len(d.Goals()) == 0 {
		t.Errorf("expected demo history and goals, got %d entries %d goals", len(d.History()), len(d.Goals()))
	}
	if d.Store().GetConfigPath() != "memory" {
		t.Errorf("expected memory store in demo mode, got %s", d.Store().GetConfigPath())
	}
	if _, err := d.ToggleSession(ctx, models.SessionBedtime); err != nil {
		t.Errorf("demo mode should accept updates: %v", err)
	}
}

func TestLoadUnavailableStore(t *testing.T) {
	cause := errors.New("database is locked")
	d := New(storage.Unavailable(cause))

	if err := d.Load(context.Background(), now); err != nil {
		t.Fatalf("Load should recover with demo data: %v", err)
	}
	if !d.Demo() || !errors.Is(d.Err(), cause) {
		t.Errorf("expected demo mode caused by %v, got demo=%v err=%v", cause, d.Demo(), d.Err())
	}
}

func TestLoadUsesConfiguredTimezone(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "Pacific/Kiritimati" // UTC+14
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatal(err)
	}

	// Noon UTC on the 12th is already the 13th in Kiritimati.
	utcNoon := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	yesterday, err := store.CreateEntry(ctx, "2025-03-12")
	if err != nil {
		t.Fatal(err)
	}
	done := true
	full := models.EntryPatch{SessionMorning: &done, SessionMidday: &done, SessionEvening: &done, SessionBedtime: &done}
	if _, err := store.UpdateEntry(ctx, yesterday.ID, full); err != nil {
		t.Fatal(err)
	}

	d := New(store)
	if err := d.Load(ctx, utcNoon); err != nil {
		t.Fatal(err)
	}
	if got := d.Today().Date; got != "2025-03-13" {
		t.Fatalf("expected today in the configured zone to be 2025-03-13, got %s", got)
	}

	r := d.Progress(utcNoon)
	if r.Progress.MissedDays != 0 {
		t.Errorf("the 12th was completed, expected 0 missed days, got %d", r.Progress.MissedDays)
	}
	if r.LongestStreak != 1 {
		t.Errorf("expected longest streak 1, got %d", r.LongestStreak)
	}
	// The week of Thursday the 13th starts on Sunday the 9th, so both days count.
	if r.Averages.Weekly != 50 {
		t.Errorf("expected weekly average 50, got %.1f", r.Averages.Weekly)
	}
}
