package models

import (
	"errors"
	"testing"
)

func TestAchievementRoundTrip(t *testing.T) {
	for _, a := range []Achievement{
		StreakAchievement{Days: 7},
		TotalAchievement{Metric: MetricStudyHours, Threshold: 12.5},
		CustomAchievement{Name: "First Offer", Detail: "Got a job offer"},
	} {
		data, err := EncodeAchievement(a)
		if err != nil {
			t.Fatalf("EncodeAchievement(%v) failed: %v", a, err)
		}
		got, err := DecodeAchievement(data)
		if err != nil {
			t.Fatalf("DecodeAchievement(%s) failed: %v", data, err)
		}
		if got != a {
			t.Errorf("round trip = %#v, want %#v", got, a)
		}
	}
}

func TestDecodeAchievementRejects(t *testing.T) {
	tests := map[string]string{
		"malformed":      `{"kind":`,
		"unknown kind":   `{"kind":"secret"}`,
		"zero days":      `{"kind":"streak","days":0}`,
		"unknown metric": `{"kind":"total","metric":"pushups","threshold":10}`,
		"zero threshold": `{"kind":"total","metric":"study_hours","threshold":0}`,
		"blank title":    `{"kind":"custom","title":"  "}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeAchievement([]byte(raw)); !errors.Is(err, ErrInvalidAchievement) {
				t.Errorf("expected ErrInvalidAchievement, got %v", err)
			}
		})
	}
}

func TestValidateAchievement(t *testing.T) {
	if err := ValidateAchievement(nil); err == nil {
		t.Error("expected error for nil achievement")
	}
	if err := ValidateAchievement(StreakAchievement{Days: -1}); err == nil {
		t.Error("expected error for negative streak")
	}
	for _, a := range BuiltinAchievements {
		if err := ValidateAchievement(a); err != nil {
			t.Errorf("builtin %q is invalid: %v", a.Title(), err)
		}
	}
}

func TestAchievementTitles(t *testing.T) {
	tests := []struct {
		a    Achievement
		want string
	}{
		{StreakAchievement{Days: 3}, "3-Day Streak"},
		{TotalAchievement{Metric: MetricBeastModeDays, Threshold: 50}, "50 Beast Mode Days"},
		{TotalAchievement{Metric: MetricJobApplications, Threshold: 50}, "50 Applications Sent"},
		{TotalAchievement{Metric: MetricStudyHours, Threshold: 100}, "100 Hours Studied"},
		{CustomAchievement{Name: "Marathon"}, "Marathon"},
	}
	for _, tt := range tests {
		if got := tt.a.Title(); got != tt.want {
			t.Errorf("Title() = %q, want %q", got, tt.want)
		}
	}
}
