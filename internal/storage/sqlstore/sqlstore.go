// Package sqlstore implements the storage queries shared by the SQLite and
// PostgreSQL backends. Queries are written with ? placeholders and rebound
// for the target dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/migration"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage"
)

type Queries struct {
	db      *sql.DB
	dialect migration.Dialect
	now     func() time.Time
}

func New(db *sql.DB, dialect migration.Dialect) *Queries {
	return &Queries{db: db, dialect: dialect, now: time.Now}
}

// rebind rewrites ? placeholders as $N for PostgreSQL.
func (q *Queries) rebind(query string) string {
	if q.dialect != migration.Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (q *Queries) timestamp() string {
	return q.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return err
}

// Entries

const entryColumns = `id, date, session_1_morning, session_2_midday, session_3_evening, session_4_bedtime,
	focus_rating, energy_rating, health_rating, emotional_state,
	burnout_level, anger_frequency, mood_swings, money_stress_level,
	job_applications, study_hours,
	morning_notes, midday_notes, evening_notes, bedtime_notes, gratitude_entry,
	completion_percentage, daily_status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (models.DailyEntry, error) {
	var e models.DailyEntry
	var focus, energy, health, emotional sql.NullInt64
	var burnout, anger, mood, money, status string
	var createdAt, updatedAt string
	err := row.Scan(
		&e.ID, &e.Date, &e.SessionMorning, &e.SessionMidday, &e.SessionEvening, &e.SessionBedtime,
		&focus, &energy, &health, &emotional,
		&burnout, &anger, &mood, &money,
		&e.JobApplications, &e.StudyHours,
		&e.MorningNotes, &e.MiddayNotes, &e.EveningNotes, &e.BedtimeNotes, &e.GratitudeEntry,
		&e.CompletionPercentage, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.DailyEntry{}, err
	}
	e.FocusRating = nullInt(focus)
	e.EnergyRating = nullInt(energy)
	e.HealthRating = nullInt(health)
	e.EmotionalState = nullInt(emotional)
	e.BurnoutLevel = models.BurnoutLevel(burnout)
	e.AngerFrequency = models.AngerFrequency(anger)
	e.MoodSwings = models.MoodSwings(mood)
	e.MoneyStressLevel = models.MoneyStressLevel(money)
	e.DailyStatus = models.DailyStatus(status)
	e.CreatedAt = parseTimestamp(createdAt)
	e.UpdatedAt = parseTimestamp(updatedAt)
	return e, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func intArg(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func (q *Queries) entryByColumn(ctx context.Context, db queryer, column, value string) (models.DailyEntry, error) {
	row := db.QueryRowContext(ctx, q.rebind("SELECT "+entryColumns+" FROM daily_entries WHERE "+column+" = ?"), value)
	e, err := scanEntry(row)
	if err != nil {
		return models.DailyEntry{}, notFound(err, "entry "+value)
	}
	return e, nil
}

func (q *Queries) GetEntry(ctx context.Context, date string) (models.DailyEntry, error) {
	return q.entryByColumn(ctx, q.db, "date", date)
}

func (q *Queries) CreateEntry(ctx context.Context, date string) (models.DailyEntry, error) {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return models.DailyEntry{}, fmt.Errorf("invalid entry date %q: %w", date, err)
	}
	e := models.NewEntry(uuid.NewString(), date, q.now().UTC())
	ts := e.CreatedAt.Format(time.RFC3339Nano)
	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO daily_entries (id, date, completion_percentage, daily_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO NOTHING`),
		e.ID, e.Date, e.CompletionPercentage, string(e.DailyStatus), ts, ts)
	if err != nil {
		return models.DailyEntry{}, fmt.Errorf("failed to create entry: %w", err)
	}
	return q.GetEntry(ctx, date)
}

func (q *Queries) UpdateEntry(ctx context.Context, id string, patch models.EntryPatch) (models.DailyEntry, error) {
	if err := patch.Validate(); err != nil {
		return models.DailyEntry{}, err
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return models.DailyEntry{}, err
	}
	defer tx.Rollback()

	e, err := q.entryByColumn(ctx, tx, "id", id)
	if err != nil {
		return models.DailyEntry{}, err
	}
	patch.Apply(&e)
	e.UpdatedAt = q.now().UTC()

	_, err = tx.ExecContext(ctx, q.rebind(`
		UPDATE daily_entries SET
			session_1_morning = ?, session_2_midday = ?, session_3_evening = ?, session_4_bedtime = ?,
			focus_rating = ?, energy_rating = ?, health_rating = ?, emotional_state = ?,
			burnout_level = ?, anger_frequency = ?, mood_swings = ?, money_stress_level = ?,
			job_applications = ?, study_hours = ?,
			morning_notes = ?, midday_notes = ?, evening_notes = ?, bedtime_notes = ?, gratitude_entry = ?,
			completion_percentage = ?, daily_status = ?, updated_at = ?
		WHERE id = ?`),
		e.SessionMorning, e.SessionMidday, e.SessionEvening, e.SessionBedtime,
		intArg(e.FocusRating), intArg(e.EnergyRating), intArg(e.HealthRating), intArg(e.EmotionalState),
		string(e.BurnoutLevel), string(e.AngerFrequency), string(e.MoodSwings), string(e.MoneyStressLevel),
		e.JobApplications, e.StudyHours,
		e.MorningNotes, e.MiddayNotes, e.EveningNotes, e.BedtimeNotes, e.GratitudeEntry,
		e.CompletionPercentage, string(e.DailyStatus), e.UpdatedAt.Format(time.RFC3339Nano),
		e.ID,
	)
	if err != nil {
		return models.DailyEntry{}, fmt.Errorf("failed to update entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.DailyEntry{}, err
	}
	return e, nil
}

func (q *Queries) listEntries(ctx context.Context, query string, args ...any) ([]models.DailyEntry, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (q *Queries) ListRecentEntries(ctx context.Context, limit int) ([]models.DailyEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	return q.listEntries(ctx, "SELECT "+entryColumns+" FROM daily_entries ORDER BY date DESC LIMIT ?", limit)
}

func (q *Queries) ListEntriesSince(ctx context.Context, date string) ([]models.DailyEntry, error) {
	return q.listEntries(ctx, "SELECT "+entryColumns+" FROM daily_entries WHERE date >= ? ORDER BY date ASC", date)
}

// Goals

const goalColumns = `id, title, category, target_value, current_value, target_date, created_at, updated_at`

func scanGoal(row scanner) (models.Goal, error) {
	var g models.Goal
	var createdAt, updatedAt string
	if err := row.Scan(&g.ID, &g.Title, &g.Category, &g.TargetValue, &g.CurrentValue, &g.TargetDate, &createdAt, &updatedAt); err != nil {
		return models.Goal{}, err
	}
	g.CreatedAt = parseTimestamp(createdAt)
	g.UpdatedAt = parseTimestamp(updatedAt)
	return g, nil
}

func (q *Queries) AddGoal(ctx context.Context, g models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	ts := q.timestamp()
	_, err := q.db.ExecContext(ctx, q.rebind(`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		g.ID, g.Title, g.Category, g.TargetValue, g.CurrentValue, g.TargetDate, ts, ts)
	if err != nil {
		return fmt.Errorf("failed to add goal: %w", err)
	}
	return nil
}

func (q *Queries) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	g, err := scanGoal(q.db.QueryRowContext(ctx, q.rebind("SELECT "+goalColumns+" FROM goals WHERE id = ?"), id))
	if err != nil {
		return models.Goal{}, notFound(err, "goal "+id)
	}
	return g, nil
}

func (q *Queries) ListGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT "+goalColumns+" FROM goals ORDER BY created_at, title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (q *Queries) UpdateGoal(ctx context.Context, g models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	res, err := q.db.ExecContext(ctx, q.rebind(`
		UPDATE goals SET title = ?, category = ?, target_value = ?, current_value = ?, target_date = ?, updated_at = ?
		WHERE id = ?`),
		g.Title, g.Category, g.TargetValue, g.CurrentValue, g.TargetDate, q.timestamp(), g.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("goal %s: %w", g.ID, storage.ErrNotFound)
	}
	return nil
}

// Settings

func (q *Queries) GetSettings(ctx context.Context) (models.Settings, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (q *Queries) SaveSettings(ctx context.Context, settings models.Settings) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q.rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Achievements

func (q *Queries) AddAchievement(ctx context.Context, a models.Achievement) (string, error) {
	if err := models.ValidateAchievement(a); err != nil {
		return "", err
	}
	data, err := models.EncodeAchievement(a)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := q.db.ExecContext(ctx, q.rebind("INSERT INTO achievements (id, data, created_at) VALUES (?, ?, ?)"),
		id, string(data), q.timestamp()); err != nil {
		return "", fmt.Errorf("failed to add achievement: %w", err)
	}
	return id, nil
}

func (q *Queries) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT data FROM achievements ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Achievement
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		a, err := models.DecodeAchievement(data)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
