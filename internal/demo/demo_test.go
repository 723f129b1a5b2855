package demo

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/beastmode/internal/progress"
)

var today = time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(42)), today, 60)
	b := Generate(rand.New(rand.NewSource(42)), today, 60)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed should produce identical history")
	}
	c := Generate(rand.New(rand.NewSource(7)), today, 60)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should differ")
	}
}

func TestGenerateShape(t *testing.T) {
	entries := Generate(rand.New(rand.NewSource(42)), today, 90)
	if len(entries) == 0 || len(entries) > 90 {
		t.Fatalf("unexpected entry count %d", len(entries))
	}
	last := entries[len(entries)-1]
	if last.Date != "2025-03-12" {
		t.Errorf("last entry should be today, got %s", last.Date)
	}
	if last.CompletedSessions() > 2 {
		t.Errorf("today should be partly done, got %d sessions", last.CompletedSessions())
	}
	if entries[0].Date < "2024-12-13" {
		t.Errorf("history starts too early: %s", entries[0].Date)
	}

	seen := map[string]bool{}
	for i, e := range entries {
		if seen[e.Date] || seen[e.ID] {
			t.Fatalf("duplicate date or id at %d: %s", i, e.Date)
		}
		seen[e.Date], seen[e.ID] = true, true
		if i > 0 && e.Date <= entries[i-1].Date {
			t.Fatalf("entries not ascending at %d", i)
		}
		if e.CompletionPercentage != progress.CompletionPercentage(e) {
			t.Errorf("%s: derived completion out of sync", e.Date)
		}
		for _, r := range []*int{e.FocusRating, e.EnergyRating, e.HealthRating, e.EmotionalState} {
			if r == nil || *r < 1 || *r > 10 {
				t.Errorf("%s: rating out of range", e.Date)
			}
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(rand.New(rand.NewSource(1)), today, 0); got != nil {
		t.Errorf("expected nil for zero days, got %d entries", len(got))
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, 42, today, 30)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	recent, err := s.ListRecentEntries(ctx, 100)
	if err != nil || len(recent) == 0 {
		t.Fatalf("expected seeded entries, got %d (%v)", len(recent), err)
	}
	goals, _ := s.ListGoals(ctx)
	if len(goals) != len(Goals(today)) {
		t.Errorf("expected %d goals, got %d", len(Goals(today)), len(goals))
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if progress.DaysRemaining(today, settings.TargetDate) != 120 {
		t.Errorf("expected 120 days remaining, got %d", progress.DaysRemaining(today, settings.TargetDate))
	}
}
