// Package dashboard holds the application state shared by the CLI, TUI and
// HTTP server: the store, today's entry and recent history.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/demo"
	"github.com/julianstephens/beastmode/internal/logger"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/progress"
	"github.com/julianstephens/beastmode/internal/storage"
)

type Dashboard struct {
	mu sync.RWMutex

	store    storage.Provider
	demoSeed int64
	demoDays int

	today        models.DailyEntry
	history      []models.DailyEntry // newest first, includes today
	goals        []models.Goal
	settings     models.Settings
	achievements []models.Achievement

	demo    bool
	loadErr error
}

type Option func(*Dashboard)

// WithDemo sets the seed and length of the fallback demo history.
func WithDemo(seed int64, days int) Option {
	return func(d *Dashboard) {
		d.demoSeed = seed
		d.demoDays = days
	}
}

func New(store storage.Provider, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:    store,
		demoSeed: constants.DefaultDemoSeed,
		demoDays: constants.DefaultDemoDays,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load refreshes state for the day containing now, creating today's entry if
// it does not exist yet. When the store fails, the dashboard switches to an
// in-memory demo data set for the rest of its life and Err reports why.
func (d *Dashboard) Load(ctx context.Context, now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.load(ctx, now)
	if err == nil || d.demo {
		return err
	}
	logger.Warn("Storage unavailable, switching to demo mode", "store", d.store.GetConfigPath(), "error", err)
	d.loadErr = err

	mem, err := demo.NewStore(ctx, d.demoSeed, now, d.demoDays)
	if err != nil {
		return fmt.Errorf("failed to build demo data: %w", err)
	}
	d.store = mem
	d.demo = true
	return d.load(ctx, now)
}

func (d *Dashboard) load(ctx context.Context, now time.Time) error {
	// Settings come first: the timezone decides which day is today.
	settings, err := d.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	date := now.In(settings.Location()).Format(constants.DateFormat)

	today, err := storage.EntryOrCreate(ctx, d.store, date)
	if err != nil {
		return fmt.Errorf("failed to load today's entry: %w", err)
	}
	history, err := d.store.ListRecentEntries(ctx, constants.MaxHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	goals, err := d.store.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	defs, err := storage.AllAchievements(ctx, d.store)
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}

	d.today = today
	d.history = progress.WithToday(today, history)
	d.goals = goals
	d.settings = settings
	d.achievements = defs
	return nil
}

// Update applies patch to today's entry. It is the only mutation path for
// entry state held by the dashboard.
func (d *Dashboard) Update(ctx context.Context, patch models.EntryPatch) (models.DailyEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.today.ID == "" {
		return models.DailyEntry{}, fmt.Errorf("dashboard not loaded")
	}
	updated, err := d.store.UpdateEntry(ctx, d.today.ID, patch)
	if err != nil {
		return models.DailyEntry{}, err
	}
	d.today = updated
	d.history = progress.WithToday(updated, d.history)
	return updated, nil
}

// ToggleSession flips one session on today's entry.
func (d *Dashboard) ToggleSession(ctx context.Context, s models.Session) (models.DailyEntry, error) {
	d.mu.RLock()
	done := d.today.SessionDone(s)
	d.mu.RUnlock()
	return d.Update(ctx, models.SessionPatch(s, !done))
}

// Progress computes every metric over the loaded state, with calendar windows
// taken in the configured timezone.
func (d *Dashboard) Progress(now time.Time) progress.Report {
	d.mu.RLock()
	defer d.mu.RUnlock()
	now = now.In(d.settings.Location())
	return progress.BuildReport(d.today, d.history, d.goals, d.settings, d.achievements, now)
}

func (d *Dashboard) Today() models.DailyEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.today
}

// History returns loaded entries newest first, today included.
func (d *Dashboard) History() []models.DailyEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.DailyEntry(nil), d.history...)
}

func (d *Dashboard) Settings() models.Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

func (d *Dashboard) Goals() []models.Goal {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Goal(nil), d.goals...)
}

// Store is the active provider, which is the demo store in demo mode.
func (d *Dashboard) Store() storage.Provider {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.store
}

// Demo reports whether the dashboard fell back to demo data.
func (d *Dashboard) Demo() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.demo
}

// Err is the storage error that triggered demo mode, if any.
func (d *Dashboard) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadErr
}
