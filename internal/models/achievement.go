package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAchievement is returned when a stored achievement cannot be decoded.
var ErrInvalidAchievement = errors.New("invalid achievement")

// AchievementKind is the discriminator stored alongside every achievement.
type AchievementKind string

const (
	KindStreak AchievementKind = "streak"
	KindTotal  AchievementKind = "total"
	KindCustom AchievementKind = "custom"
)

// TotalMetric names a cumulative counter an achievement can track.
type TotalMetric string

const (
	MetricBeastModeDays   TotalMetric = "beast_mode_days"
	MetricJobApplications TotalMetric = "job_applications"
	MetricStudyHours      TotalMetric = "study_hours"
)

// Achievement is a closed set of achievement shapes. Only the types in this
// package implement it.
type Achievement interface {
	Kind() AchievementKind
	Title() string
	Description() string
	achievement()
}

type StreakAchievement struct {
	Days int `json:"days"`
}

func (StreakAchievement) Kind() AchievementKind { return KindStreak }
func (a StreakAchievement) Title() string     { return fmt.Sprintf("%d-Day Streak", a.Days) }
func (a StreakAchievement) Description() string {
	return fmt.Sprintf("Kept %d consecutive days at 75%% or better", a.Days)
}
func (StreakAchievement) achievement() {}

type TotalAchievement struct {
	Metric    TotalMetric `json:"metric"`
	Threshold float64     `json:"threshold"`
}

func (TotalAchievement) Kind() AchievementKind { return KindTotal }

func (a TotalAchievement) Title() string {
	switch a.Metric {
	case MetricBeastModeDays:
		return fmt.Sprintf("%g Beast Mode Days", a.Threshold)
	case MetricJobApplications:
		return fmt.Sprintf("%g Applications Sent", a.Threshold)
	case MetricStudyHours:
		return fmt.Sprintf("%g Hours Studied", a.Threshold)
	}
	return string(a.Metric)
}

func (a TotalAchievement) Description() string {
	return fmt.Sprintf("Reached %g total %s", a.Threshold, strings.ReplaceAll(string(a.Metric), "_", " "))
}
func (TotalAchievement) achievement() {}

type CustomAchievement struct {
	Name   string `json:"title"`
	Detail string `json:"description"`
}

func (CustomAchievement) Kind() AchievementKind { return KindCustom }
func (a CustomAchievement) Title() string       { return a.Name }
func (a CustomAchievement) Description() string { return a.Detail }
func (CustomAchievement) achievement()          {}

// BuiltinAchievements are the milestones every user can unlock.
var BuiltinAchievements = []Achievement{
	TotalAchievement{Metric: MetricBeastModeDays, Threshold: 1},
	StreakAchievement{Days: 3},
	StreakAchievement{Days: 7},
	StreakAchievement{Days: 30},
	StreakAchievement{Days: 100},
	TotalAchievement{Metric: MetricBeastModeDays, Threshold: 50},
	TotalAchievement{Metric: MetricJobApplications, Threshold: 50},
	TotalAchievement{Metric: MetricStudyHours, Threshold: 100},
}

type achievementEnvelope struct {
	Kind AchievementKind `json:"kind"`
	StreakAchievement
	TotalAchievement
	CustomAchievement
}

// EncodeAchievement serializes an achievement with its kind discriminator.
func EncodeAchievement(a Achievement) ([]byte, error) {
	env := achievementEnvelope{Kind: a.Kind()}
	switch v := a.(type) {
	case StreakAchievement:
		env.StreakAchievement = v
	case TotalAchievement:
		env.TotalAchievement = v
	case CustomAchievement:
		env.CustomAchievement = v
	}
	return json.Marshal(env)
}

// DecodeAchievement validates raw stored JSON and returns the matching variant.
func DecodeAchievement(raw []byte) (Achievement, error) {
	var env achievementEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAchievement, err)
	}

	switch env.Kind {
	case KindStreak:
		if env.Days < 1 {
			return nil, fmt.Errorf("%w: streak days must be at least 1", ErrInvalidAchievement)
		}
		return env.StreakAchievement, nil
	case KindTotal:
		switch env.Metric {
		case MetricBeastModeDays, MetricJobApplications, MetricStudyHours:
		default:
			return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidAchievement, env.Metric)
		}
		if env.Threshold <= 0 {
			return nil, fmt.Errorf("%w: threshold must be positive", ErrInvalidAchievement)
		}
		return env.TotalAchievement, nil
	case KindCustom:
		if strings.TrimSpace(env.Name) == "" {
			return nil, fmt.Errorf("%w: custom achievement needs a title", ErrInvalidAchievement)
		}
		return env.CustomAchievement, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidAchievement, env.Kind)
}

// ValidateAchievement runs the checks DecodeAchievement applies to stored data.
func ValidateAchievement(a Achievement) error {
	if a == nil {
		return fmt.Errorf("%w: nil achievement", ErrInvalidAchievement)
	}
	data, err := EncodeAchievement(a)
	if err != nil {
		return err
	}
	_, err = DecodeAchievement(data)
	return err
}
