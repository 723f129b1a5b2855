// Package demo produces synthetic history for demo mode. Output depends only
// on the random source and the reference day, so a fixed seed always yields
// the same dashboard.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
	"github.com/julianstephens/beastmode/internal/storage/memory"
)

// skipRate is the share of past days with no entry at all.
const skipRate = 0.08

var (
	burnout = []models.BurnoutLevel{models.BurnoutLow, models.BurnoutLow, models.BurnoutMedium, models.BurnoutHigh}
	anger   = []models.AngerFrequency{models.AngerNone, models.AngerNone, models.AngerOnce, models.AngerTwice, models.AngerOften}
	swings  = []models.MoodSwings{models.MoodSwingsNone, models.MoodSwingsMild, models.MoodSwingsStrong}
	stress  = []models.MoneyStressLevel{models.MoneyStressNone, models.MoneyStressModerate, models.MoneyStressHigh}
	thanks  = []string{"morning coffee", "a quiet hour", "the kids laughing", "a good run", "call with mom", ""}
)

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.Intn(len(xs))]
}

// Generate returns up to days entries ending on today, oldest first. Past
// days are occasionally skipped; today is always present and only partly done.
func Generate(rng *rand.Rand, today time.Time, days int) []models.DailyEntry {
	if days <= 0 {
		return nil
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]models.DailyEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if i > 0 && rng.Float64() < skipRate {
			continue
		}
		out = append(out, entryFor(rng, day, i == 0))
	}
	return out
}

func entryFor(rng *rand.Rand, day time.Time, isToday bool) models.DailyEntry {
	date := day.Format(constants.DateFormat)
	created := day.Add(7 * time.Hour)
	e := models.NewEntry(uuid.NewSHA1(uuid.NameSpaceOID, []byte("beastmode-demo-"+date)).String(), date, created)

	// Weekends slip more often.
	p := 0.85
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		p = 0.6
	}
	sessions := models.Sessions
	if isToday {
		sessions = sessions[:rng.Intn(3)]
	}
	for _, s := range sessions {
		if rng.Float64() < p {
			e.SetSession(s, true)
		}
	}

	rating := func() *int {
		v := 4 + rng.Intn(7)
		return &v
	}
	e.FocusRating, e.EnergyRating, e.HealthRating, e.EmotionalState = rating(), rating(), rating(), rating()
	e.BurnoutLevel = pick(rng, burnout)
	e.AngerFrequency = pick(rng, anger)
	e.MoodSwings = pick(rng, swings)
	e.MoneyStressLevel = pick(rng, stress)
	e.JobApplications = rng.Intn(6)
	e.StudyHours = float64(rng.Intn(9)) / 2
	e.GratitudeEntry = pick(rng, thanks)
	e.UpdatedAt = created.Add(time.Duration(rng.Intn(15)) * time.Hour)
	e.Normalize()
	return e
}

// Goals returns the sample goals shown alongside demo history.
func Goals(today time.Time) []models.Goal {
	return []models.Goal{
		{ID: "demo-goal-fund", Title: "Emergency fund", Category: "finance", TargetValue: 5000, CurrentValue: 1850,
			TargetDate: today.AddDate(0, 6, 0).Format(constants.DateFormat)},
		{ID: "demo-goal-apps", Title: "Job applications", Category: "career", TargetValue: 100, CurrentValue: 64},
		{ID: "demo-goal-cert", Title: "Finish certification", Category: "study", TargetValue: 12, CurrentValue: 5},
	}
}

// Settings returns defaults with a countdown target and a family goal.
func Settings(today time.Time) models.Settings {
	s := models.DefaultSettings()
	s.UserName = "Demo"
	s.FamilyGoal = "a house with a yard"
	s.TargetDate = today.AddDate(0, 0, 120).Format(constants.DateFormat)
	return s
}

// NewStore returns an initialized memory store holding a full demo data set.
func NewStore(ctx context.Context, seed int64, today time.Time, days int) (*memory.Store, error) {
	s := memory.New()
	if err := s.Init(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	s.Seed(Generate(rng, today, days))
	for _, g := range Goals(today) {
		if err := s.AddGoal(ctx, g); err != nil {
			return nil, fmt.Errorf("failed to seed demo goal: %w", err)
		}
	}
	if err := s.SaveSettings(ctx, Settings(today)); err != nil {
		return nil, fmt.Errorf("failed to seed demo settings: %w", err)
	}
	return s, nil
}
