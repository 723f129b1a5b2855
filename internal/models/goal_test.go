package models

import "testing"

func TestGoal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		goal    Goal
		wantErr bool
	}{
		{"valid", Goal{Title: "Emergency fund", TargetValue: 1000, TargetDate: "2025-12-31"}, false},
		{"blank title", Goal{Title: " ", TargetValue: 1}, true},
		{"zero target", Goal{Title: "x"}, true},
		{"negative current", Goal{Title: "x", TargetValue: 1, CurrentValue: -1}, true},
		{"bad date", Goal{Title: "x", TargetValue: 1, TargetDate: "12/31/2025"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.goal.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGoal_ProgressPercentage(t *testing.T) {
	tests := []struct {
		current, target float64
		want            int
	}{
		{0, 100, 0},
		{33.4, 100, 33},
		{2, 3, 67},
		{150, 100, 100},
		{5, 0, 0},
	}
	for _, tt := range tests {
		g := Goal{CurrentValue: tt.current, TargetValue: tt.target}
		if got := g.ProgressPercentage(); got != tt.want {
			t.Errorf("ProgressPercentage(%v/%v) = %d, want %d", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestGoalPatch_Apply(t *testing.T) {
	g := Goal{Title: "Save", Category: "money", TargetValue: 100, CurrentValue: 10}
	current := 40.0
	due := "2025-06-01"
	if err := (GoalPatch{CurrentValue: &current, TargetDate: &due}).Apply(&g); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if g.CurrentValue != 40 || g.TargetDate != due || g.Title != "Save" || g.Category != "money" {
		t.Errorf("unexpected goal after patch: %+v", g)
	}

	zero := 0.0
	if err := (GoalPatch{TargetValue: &zero}).Apply(&g); err == nil {
		t.Error("expected validation error for zero target")
	}
}

func TestUserProgress_CompletionPercent(t *testing.T) {
	if got := (UserProgress{CompletedTasks: 3, TotalTasks: 4}).CompletionPercent(); got != 75 {
		t.Errorf("got %d, want 75", got)
	}
	if got := (UserProgress{}).CompletionPercent(); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
