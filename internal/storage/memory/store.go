// Package memory is a process-local provider used for demo mode and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	entries      map[string]models.DailyEntry // by date
	goals        map[string]models.Goal
	goalOrder    []string
	settings     map[string]string
	achievements []models.Achievement
	now          func() time.Time
}

var _ storage.Provider = (*Store)(nil)

func New() *Store {
	return &Store{
		entries:  map[string]models.DailyEntry{},
		goals:    map[string]models.Goal{},
		settings: map[string]string{},
		now:      time.Now,
	}
}

// Init seeds default settings.
func (s *Store) Init() error {
	return s.SaveSettings(context.Background(), models.DefaultSettings())
}

func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return "memory" }

// Seed replaces stored entries wholesale, recomputing derived fields.
func (s *Store) Seed(entries []models.DailyEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]models.DailyEntry, len(entries))
	for _, e := range entries {
		e.Normalize()
		s.entries[e.Date] = e
	}
}

func (s *Store) GetEntry(_ context.Context, date string) (models.DailyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[date]
	if !ok {
		return models.DailyEntry{}, fmt.Errorf("entry %s: %w", date, storage.ErrNotFound)
	}
	return e, nil
}

func (s *Store) CreateEntry(_ context.Context, date string) (models.DailyEntry, error) {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return models.DailyEntry{}, fmt.Errorf("invalid entry date %q: %w", date, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[date]; ok {
		return e, nil
	}
	e := models.NewEntry(uuid.NewString(), date, s.now().UTC())
	s.entries[date] = e
	return e, nil
}

func (s *Store) UpdateEntry(_ context.Context, id string, patch models.EntryPatch) (models.DailyEntry, error) {
	if err := patch.Validate(); err != nil {
		return models.DailyEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for date, e := range s.entries {
		if e.ID != id {
			continue
		}
		patch.Apply(&e)
		e.UpdatedAt = s.now().UTC()
		s.entries[date] = e
		return e, nil
	}
	return models.DailyEntry{}, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
}

func (s *Store) sortedEntries() []models.DailyEntry {
	out := make([]models.DailyEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b models.DailyEntry) int { return strings.Compare(a.Date, b.Date) })
	return out
}

func (s *Store) ListRecentEntries(_ context.Context, limit int) ([]models.DailyEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.sortedEntries()
	slices.Reverse(all)
	return all[:min(limit, len(all))], nil
}

func (s *Store) ListEntriesSince(_ context.Context, date string) ([]models.DailyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DailyEntry
	for _, e := range s.sortedEntries() {
		if e.Date >= date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) AddGoal(_ context.Context, g models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[g.ID]; ok {
		return fmt.Errorf("goal %s already exists", g.ID)
	}
	g.CreatedAt = s.now().UTC()
	g.UpdatedAt = g.CreatedAt
	s.goals[g.ID] = g
	s.goalOrder = append(s.goalOrder, g.ID)
	return nil
}

func (s *Store) GetGoal(_ context.Context, id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}
	return g, nil
}

func (s *Store) ListGoals(_ context.Context) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Goal, 0, len(s.goalOrder))
	for _, id := range s.goalOrder {
		out = append(out, s.goals[id])
	}
	return out, nil
}

func (s *Store) UpdateGoal(_ context.Context, g models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.goals[g.ID]
	if !ok {
		return fmt.Errorf("goal %s: %w", g.ID, storage.ErrNotFound)
	}
	g.CreatedAt = old.CreatedAt
	g.UpdatedAt = s.now().UTC()
	s.goals[g.ID] = g
	return nil
}

func (s *Store) GetSettings(_ context.Context) (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.settings) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}
	settings, err := models.MapToSettings(s.settings)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.SettingsToMap(settings)
	return nil
}

func (s *Store) AddAchievement(_ context.Context, a models.Achievement) (string, error) {
	if err := models.ValidateAchievement(a); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements = append(s.achievements, a)
	return uuid.NewString(), nil
}

func (s *Store) ListAchievements(_ context.Context) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.achievements), nil
}
