package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/domain/domaintest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlanDocument_Sample(t *testing.T) {
	doc, err := domain.ParsePlanDocument([]byte(domaintest.TwelveWeekPlan))
	require.NoError(t, err)

	assert.Equal(t, "Foundations 12", doc.PlanName)
	assert.Equal(t, 12, doc.TotalWeeks)
	assert.Equal(t, 3, doc.DaysPerWeek)
	assert.Len(t, doc.Phases, 6)
	assert.Len(t, doc.Workouts, 3)
	assert.Equal(t, 12, doc.ExerciseCount())

	rdl := doc.Workouts[0].Exercises[2]
	assert.Equal(t, "Romanian Deadlift", rdl.Name)
	assert.Equal(t, 3, rdl.Sets, "numeric string sets")
	assert.Equal(t, "10", rdl.Reps, "numeric reps become text")
	require.NotNil(t, rdl.RestSeconds)
	assert.Equal(t, 90, *rdl.RestSeconds)

	assert.Nil(t, doc.Workouts[0].Exercises[0].RestSeconds)
	assert.JSONEq(t, domaintest.TwelveWeekPlan, string(doc.Raw()))
}

func TestParsePlanDocument_Defaults(t *testing.T) {
	doc, err := domain.ParsePlanDocument([]byte(`{"plan_name": "Minimal", "workouts": []}`))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTotalWeeks, doc.TotalWeeks)
	assert.Equal(t, domain.DefaultDaysPerWeek, doc.DaysPerWeek)
	assert.Empty(t, doc.Phases)
}

func TestParsePlanDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{name: "not json", raw: "Here is your plan!"},
		{name: "array", raw: `[1,2]`},
		{name: "missing plan name", raw: `{"workouts": []}`, path: "plan_name"},
		{name: "blank plan name", raw: `{"plan_name": "  "}`, path: "plan_name"},
		{name: "missing day", raw: `{"plan_name": "p", "workouts": [{"name": "A"}]}`, path: "workouts[0].day"},
		{name: "bad day", raw: `{"plan_name": "p", "workouts": [{"day": "Funday", "name": "A"}]}`, path: "workouts[0].day"},
		{name: "missing workout name", raw: `{"plan_name": "p", "workouts": [{"day": "Monday"}]}`, path: "workouts[0].name"},
		{
			name: "missing exercise name",
			raw:  `{"plan_name": "p", "workouts": [{"day": "Monday", "name": "A", "exercises": [{"sets": 3}]}]}`,
			path: "workouts[0].exercises[0].name",
		},
		{
			name: "missing sets",
			raw:  `{"plan_name": "p", "workouts": [{"day": "Monday", "name": "A", "exercises": [{"name": "Squat"}, {"name": "Row"}]}]}`,
			path: "workouts[0].exercises[0].sets",
		},
		{
			name: "non numeric sets",
			raw:  `{"plan_name": "p", "workouts": [{"day": "Monday", "name": "A", "exercises": [{"name": "Squat", "sets": "lots"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := domain.ParsePlanDocument([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)

			if tt.path != "" {
				var docErr *domain.DocumentError
				require.ErrorAs(t, err, &docErr)
				assert.Equal(t, tt.path, docErr.Path)
			}
		})
	}
}

func TestBuildPlan(t *testing.T) {
	doc := domaintest.ParsedTwelveWeekPlan(t)
	start := time.Date(2025, 3, 3, 15, 30, 0, 0, time.UTC)

	plan := doc.BuildPlan("profile-1", start)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "profile-1", plan.ProfileID)
	assert.True(t, plan.IsActive)
	assert.Equal(t, domain.PlanActive, plan.Status)
	assert.Equal(t, 1, plan.CurrentWeek)
	require.NotNil(t, plan.StartDate)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), *plan.StartDate)

	require.Len(t, plan.Phases, 6)
	assert.Equal(t, domain.PhaseRecovery, plan.Phases[1].Type)
	assert.Equal(t, domain.PhaseRecovery, plan.Phases[3].Type, "deload is recovery")
	assert.Equal(t, domain.PhaseProgressive, plan.Phases[4].Type)
	for i, p := range plan.Phases {
		assert.Equal(t, i, p.OrderIndex)
		assert.Equal(t, plan.ID, p.PlanID)
	}

	require.Len(t, plan.Workouts, 3)
	upper := plan.Workouts[1]
	assert.Equal(t, "wednesday", upper.DayOfWeek)
	require.Len(t, upper.Exercises, 4)
	assert.Equal(t, domain.CategoryMain, upper.Exercises[2].Category, "missing type is main")
	assert.Equal(t, upper.ID, upper.Exercises[2].WorkoutID)

	var fromRaw map[string]interface{}
	require.NoError(t, json.Unmarshal(plan.Document, &fromRaw))
	assert.Equal(t, "Foundations 12", fromRaw["plan_name"])
}

func TestPlan_WorkoutForDay(t *testing.T) {
	plan := domaintest.ParsedTwelveWeekPlan(t).BuildPlan("p", time.Now())

	wed := plan.WorkoutForDay(time.Wednesday)
	require.NotNil(t, wed, "day names match case-insensitively")
	assert.Equal(t, "Upper A", wed.Name)
	assert.Nil(t, plan.WorkoutForDay(time.Sunday))

	assert.ElementsMatch(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, plan.TrainingDays())
}
