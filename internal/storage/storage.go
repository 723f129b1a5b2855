// Package storage defines the persistence contract shared by the SQLite,
// PostgreSQL and in-memory backends.
package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/julianstephens/beastmode/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the database has never been created.
	ErrNotInitialized = errors.New("storage not initialized, run 'beastmode init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	GetEntry(ctx context.Context, date string) (models.DailyEntry, error)
	// CreateEntry inserts an empty entry for date, or returns the existing one.
	CreateEntry(ctx context.Context, date string) (models.DailyEntry, error)
	// UpdateEntry merges patch into the entry and recomputes derived fields in
	// one transaction.
	UpdateEntry(ctx context.Context, id string, patch models.EntryPatch) (models.DailyEntry, error)
	// ListRecentEntries returns at most limit entries, newest first.
	ListRecentEntries(ctx context.Context, limit int) ([]models.DailyEntry, error)
	// ListEntriesSince returns entries on or after date, oldest first.
	ListEntriesSince(ctx context.Context, date string) ([]models.DailyEntry, error)

	// Goals
	AddGoal(ctx context.Context, g models.Goal) error
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	ListGoals(ctx context.Context) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, g models.Goal) error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error

	// Achievements holds user-defined definitions; built-ins are not stored.
	AddAchievement(ctx context.Context, a models.Achievement) (string, error)
	ListAchievements(ctx context.Context) ([]models.Achievement, error)

	GetConfigPath() string
}

// IsPostgres reports whether config is a PostgreSQL connection URL rather
// than a SQLite file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password, in either URL or key=value form.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, set := u.User.Password()
		return set
	}
	for _, pair := range strings.Fields(connStr) {
		key, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return true
		}
	}
	return false
}

// EntryOrCreate returns the entry for date, creating an empty one if needed.
func EntryOrCreate(ctx context.Context, p Provider, date string) (models.DailyEntry, error) {
	e, err := p.GetEntry(ctx, date)
	if errors.Is(err, ErrNotFound) {
		return p.CreateEntry(ctx, date)
	}
	return e, err
}

// AllAchievements returns the built-in definitions followed by stored ones.
func AllAchievements(ctx context.Context, p Provider) ([]models.Achievement, error) {
	custom, err := p.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}
	return append(append([]models.Achievement{}, models.BuiltinAchievements...), custom...), nil
}
