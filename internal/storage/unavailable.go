package storage

import (
	"context"

	"github.com/julianstephens/beastmode/internal/models"
)

type unavailable struct {
	err error
}

// Unavailable returns a provider whose every call fails with err. It stands
// in for a store that could not be loaded so callers can fall back cleanly.
func Unavailable(err error) Provider {
	return unavailable{err: err}
}

func (u unavailable) Init() error  { return u.err }
func (u unavailable) Load() error  { return u.err }
func (u unavailable) Close() error { return nil }

func (u unavailable) GetEntry(context.Context, string) (models.DailyEntry, error) {
	return models.DailyEntry{}, u.err
}

func (u unavailable) CreateEntry(context.Context, string) (models.DailyEntry, error) {
	return models.DailyEntry{}, u.err
}

func (u unavailable) UpdateEntry(context.Context, string, models.EntryPatch) (models.DailyEntry, error) {
	return models.DailyEntry{}, u.err
}

func (u unavailable) ListRecentEntries(context.Context, int) ([]models.DailyEntry, error) {
	return nil, u.err
}

func (u unavailable) ListEntriesSince(context.Context, string) ([]models.DailyEntry, error) {
	return nil, u.err
}

func (u unavailable) AddGoal(context.Context, models.Goal) error { return u.err }

func (u unavailable) GetGoal(context.Context, string) (models.Goal, error) {
	return models.Goal{}, u.err
}

func (u unavailable) ListGoals(context.Context) ([]models.Goal, error) { return nil, u.err }

func (u unavailable) UpdateGoal(context.Context, models.Goal) error { return u.err }

func (u unavailable) GetSettings(context.Context) (models.Settings, error) {
	return models.Settings{}, u.err
}

func (u unavailable) SaveSettings(context.Context, models.Settings) error { return u.err }

func (u unavailable) AddAchievement(context.Context, models.Achievement) (string, error) {
	return "", u.err
}

func (u unavailable) ListAchievements(context.Context) ([]models.Achievement, error) {
	return nil, u.err
}

func (u unavailable) GetConfigPath() string { return "unavailable" }
