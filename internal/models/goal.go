package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/beastmode/internal/constants"
)

type Goal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	TargetDate   string    `json:"target_date,omitempty"` // YYYY-MM-DD, optional
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("goal title cannot be empty")
	}
	if g.TargetValue <= 0 {
		return fmt.Errorf("goal target must be positive, got %v", g.TargetValue)
	}
	if g.CurrentValue < 0 {
		return fmt.Errorf("goal current value cannot be negative")
	}
	if g.TargetDate != "" {
		if _, err := time.Parse(constants.DateFormat, g.TargetDate); err != nil {
			return fmt.Errorf("invalid target date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// ProgressPercentage is round(current/target*100), clamped to [0,100].
func (g Goal) ProgressPercentage() int {
	if g.TargetValue <= 0 {
		return 0
	}
	pct := int(math.Round(g.CurrentValue / g.TargetValue * 100))
	return max(0, min(100, pct))
}

// UserProgress is the on-demand snapshot consumed by the dashboard and notifications.
type UserProgress struct {
	CompletedTasks int    `json:"completed_tasks"`
	TotalTasks     int    `json:"total_tasks"`
	CurrentStreak  int    `json:"current_streak"`
	GoalProgress   int    `json:"goal_progress"`
	DaysRemaining  int    `json:"days_remaining"`
	MissedDays     int    `json:"missed_days"`
	FamilyGoal     string `json:"family_goal"`
	UserName       string `json:"user_name"`
}

// CompletionPercent is the share of today's sessions that are done.
func (p UserProgress) CompletionPercent() int {
	if p.TotalTasks <= 0 {
		return 0
	}
	return p.CompletedTasks * 100 / p.TotalTasks
}

// GoalPatch is a partial update to a Goal. Nil fields are left untouched.
type GoalPatch struct {
	Title        *string  `json:"title,omitempty"`
	Category     *string  `json:"category,omitempty"`
	TargetValue  *float64 `json:"target_value,omitempty"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	TargetDate   *string  `json:"target_date,omitempty"`
}

// Apply merges the patch into g and validates the result.
func (p GoalPatch) Apply(g *Goal) error {
	setString(&g.Title, p.Title)
	setString(&g.Category, p.Category)
	setString(&g.TargetDate, p.TargetDate)
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	return g.Validate()
}
