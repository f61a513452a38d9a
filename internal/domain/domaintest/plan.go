// Package domaintest provides plan documents shared by tests across packages.
package domaintest

import (
	"testing"

	"alcyxob/fitlocal/internal/domain"
)

// TwelveWeekPlan has 6 phases covering weeks 1-12, 3 workouts (Mon/Wed/Fri)
// and 12 exercises in total. Reps and sets deliberately mix strings and numbers.
const TwelveWeekPlan = `{
  "plan_name": "Foundations 12",
  "description": "Full body strength, three days a week",
  "days_per_week": 3,
  "total_weeks": 12,
  "phases": [
    {"phase_name": "Base", "phase_type": "progressive", "week_start": 1, "week_end": 3, "nutrition_guide": "Maintenance calories, 0.8g protein per lb"},
    {"phase_name": "Deload 1", "phase_type": "recovery", "week_start": 4, "week_end": 4, "nutrition_guide": "Keep protein high"},
    {"phase_name": "Build", "phase_type": "progressive", "week_start": 5, "week_end": 7},
    {"phase_name": "Deload 2", "phase_type": "deload", "week_start": 8, "week_end": 8},
    {"phase_name": "Peak", "phase_type": "progressive", "week_start": 9, "week_end": 11},
    {"phase_name": "Taper", "phase_type": "recovery", "week_start": 12, "week_end": 12}
  ],
  "workouts": [
    {"day": "Monday", "name": "Lower A", "exercises": [
      {"name": "Bike", "type": "warmup", "sets": 1, "reps": "5 min"},
      {"name": "Goblet Squat", "type": "main", "sets": 3, "reps": "8-10", "rest_seconds": 90, "form_cues": "Chest up"},
      {"name": "Romanian Deadlift", "type": "main", "sets": "3", "reps": 10, "rest_seconds": 90},
      {"name": "Hip Stretch", "type": "cooldown", "sets": 1, "reps": "60s"}
    ]},
    {"day": "wednesday", "name": "Upper A", "exercises": [
      {"name": "Band Pull Apart", "type": "warmup", "sets": 2, "reps": "15"},
      {"name": "Push-up", "type": "main", "sets": 3, "reps": "AMRAP", "rest_seconds": 60},
      {"name": "Dumbbell Row", "sets": 3, "reps": "10 each", "rest_seconds": 60},
      {"name": "Doorway Stretch", "type": "cooldown", "sets": 1, "reps": "30s"}
    ]},
    {"day": "Friday", "name": "Full Body", "exercises": [
      {"name": "Jumping Jacks", "type": "warmup", "sets": 1, "reps": 30},
      {"name": "Trap Bar Deadlift", "type": "main", "sets": 4, "reps": "5", "rest_seconds": 120, "notes": "Leave 2 in the tank"},
      {"name": "Overhead Press", "type": "main", "sets": 3, "reps": "8", "rest_seconds": 90},
      {"name": "Child's Pose", "type": "cooldown", "sets": 1, "reps": "60s"}
    ]}
  ]
}`

// ParsedTwelveWeekPlan parses TwelveWeekPlan or fails the test.
func ParsedTwelveWeekPlan(t testing.TB) *domain.PlanDocument {
	t.Helper()
	doc, err := domain.ParsePlanDocument([]byte(TwelveWeekPlan))
	if err != nil {
		t.Fatalf("parse sample plan: %v", err)
	}
	return doc
}
