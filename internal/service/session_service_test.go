package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutByName(t *testing.T, plan *domain.Plan, name string) *domain.PlannedWorkout {
	t.Helper()
	for i := range plan.Workouts {
		if plan.Workouts[i].Name == name {
			return &plan.Workouts[i]
		}
	}
	t.Fatalf("workout %q not in plan", name)
	return nil
}

func TestSessionService_TodayWorkout(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	_, err := env.sessions.TodayWorkout(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrNoActivePlan)

	env.activatePlan(t, profile.ID)

	today, err := env.sessions.TodayWorkout(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monday", today.Day)
	require.NotNil(t, today.Workout)
	assert.Equal(t, "Lower A", today.Workout.Name)
	require.Len(t, today.Exercises, 4)
	assert.Equal(t, "Bike", today.Exercises[0].Name)
	assert.Equal(t, "Goblet Squat", today.Exercises[1].Name)
	assert.Equal(t, "Romanian Deadlift", today.Exercises[2].Name)
	assert.Equal(t, "Hip Stretch", today.Exercises[3].Name)
	for _, ex := range today.Exercises {
		assert.Nil(t, ex.LastPerformance)
	}

	// Tuesday is a rest day
	env.advance(1)
	today, err = env.sessions.TodayWorkout(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", today.Day)
	assert.Nil(t, today.Workout)
	assert.Empty(t, today.Exercises)

	// "wednesday" in the document still matches
	env.advance(1)
	today, err = env.sessions.TodayWorkout(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, today.Workout)
	assert.Equal(t, "Upper A", today.Workout.Name)
	assert.Equal(t, "Band Pull Apart", today.Exercises[0].Name)
	assert.Equal(t, "Dumbbell Row", today.Exercises[2].Name, "untyped exercise is main")
}

func TestSessionService_LogParsesLeniently(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)
	plan := env.activatePlan(t, profile.ID)
	lowerA := workoutByName(t, plan, "Lower A")

	session, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		PlannedWorkoutID: lowerA.ID,
		Feeling:          "4",
		Notes:            " felt good ",
		Sets: []service.SetInput{
			{ExerciseName: "Goblet Squat", SetNumber: "1", Weight: "135", Reps: "10", RPE: "7"},
			{ExerciseName: "Goblet Squat", SetNumber: 2.0, Weight: 140.0, Reps: "abc", RPE: ""},
			{ExerciseName: "Romanian Deadlift", SetNumber: "", Weight: "heavy", Reps: 8.0},
			{ExerciseName: "   ", SetNumber: "3", Weight: "100"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.DateOf(planStart), session.Date)
	assert.Equal(t, "Lower A", session.WorkoutName)
	require.NotNil(t, session.Feeling)
	assert.Equal(t, 4, *session.Feeling)
	assert.Equal(t, "felt good", session.Notes)
	require.Len(t, session.Sets, 3, "blank exercise rows are skipped")

	first := session.Sets[0]
	assert.Equal(t, 1, first.SetNumber)
	assert.Equal(t, 135.0, *first.Weight)
	assert.Equal(t, 10, *first.Reps)
	assert.Equal(t, 7, *first.RPE)

	second := session.Sets[1]
	assert.Equal(t, 2, second.SetNumber)
	assert.Equal(t, 140.0, *second.Weight)
	assert.Nil(t, second.Reps)
	assert.Nil(t, second.RPE)

	third := session.Sets[2]
	assert.Equal(t, 1, third.SetNumber, "set number defaults to 1")
	assert.Nil(t, third.Weight)
	assert.Equal(t, 8, *third.Reps)

	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{PlannedWorkoutID: "nope"})
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)

	unplanned, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		Sets: []service.SetInput{{ExerciseName: "Run", Notes: "5k"}},
	})
	require.NoError(t, err)
	assert.Nil(t, unplanned.PlannedWorkoutID)
	assert.Equal(t, domain.UnplannedWorkoutName, unplanned.DisplayWorkoutName())
}

func TestSessionService_Streak(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	logOnce := func() *domain.Profile {
		_, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
			Sets: []service.SetInput{{ExerciseName: "Push-up", Reps: "20"}},
		})
		require.NoError(t, err)
		p, err := env.profiles.GetByID(ctx, profile.ID)
		require.NoError(t, err)
		return p
	}

	p := logOnce()
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	require.NotNil(t, p.LastWorkoutDate)
	assert.True(t, domain.DateOf(planStart).Equal(*p.LastWorkoutDate))

	// same day: no change
	p = logOnce()
	assert.Equal(t, 1, p.CurrentStreak)

	env.advance(3)
	p = logOnce()
	assert.Equal(t, 2, p.CurrentStreak)

	env.advance(2)
	p = logOnce()
	assert.Equal(t, 3, p.CurrentStreak)
	assert.Equal(t, 3, p.LongestStreak)

	env.advance(4)
	p = logOnce()
	assert.Equal(t, 1, p.CurrentStreak, "a 4 day gap resets")
	assert.Equal(t, 3, p.LongestStreak)
}

func TestSessionService_LastPerformance(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	perf, err := env.sessions.LastPerformance(ctx, profile.ID, "Goblet Squat")
	require.NoError(t, err)
	assert.Nil(t, perf)

	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{Sets: []service.SetInput{
		{ExerciseName: "Goblet Squat", SetNumber: 1, Weight: 135, Reps: 10},
	}})
	require.NoError(t, err)

	// the earlier miss was cached, logging must invalidate it
	perf, err = env.sessions.LastPerformance(ctx, profile.ID, "Goblet Squat")
	require.NoError(t, err)
	require.NotNil(t, perf)
	assert.Equal(t, 135.0, *perf.MaxWeight)
	assert.Equal(t, 10, *perf.MaxReps)

	env.advance(2)
	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{Sets: []service.SetInput{
		{ExerciseName: "Goblet Squat", SetNumber: 1, Weight: 140, Reps: 8},
		{ExerciseName: "Goblet Squat", SetNumber: 2, Weight: 130, Reps: 9},
		{ExerciseName: "goblet squat", SetNumber: 1, Weight: 500, Reps: 50},
	}})
	require.NoError(t, err)

	perf, err = env.sessions.LastPerformance(ctx, profile.ID, "Goblet Squat")
	require.NoError(t, err)
	require.NotNil(t, perf)
	assert.Equal(t, 140.0, *perf.MaxWeight, "only the latest session counts")
	assert.Equal(t, 9, *perf.MaxReps, "maxima are taken per field")
	assert.True(t, domain.DateOf(env.now).Equal(perf.Date))
}

func TestSessionService_HistoryDetailAndCalendar(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)
	plan := env.activatePlan(t, profile.ID)

	// Mon 2 June and Wed 4 June logged, Fri 6 June skipped
	first, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		PlannedWorkoutID: workoutByName(t, plan, "Lower A").ID,
		Sets: []service.SetInput{
			{ExerciseName: "Romanian Deadlift", SetNumber: 2, Reps: 10},
			{ExerciseName: "Goblet Squat", SetNumber: 2, Reps: 8},
			{ExerciseName: "Goblet Squat", SetNumber: 1, Reps: 10},
		},
	})
	require.NoError(t, err)
	env.advance(2)
	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		PlannedWorkoutID: workoutByName(t, plan, "Upper A").ID,
		Sets:             []service.SetInput{{ExerciseName: "Push-up", Reps: 20}},
	})
	require.NoError(t, err)

	history, err := env.sessions.History(ctx, profile.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Upper A", history[0].WorkoutName, "newest first")

	detail, err := env.sessions.Detail(ctx, profile.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lower A", detail.WorkoutName)
	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, "Goblet Squat", detail.Exercises[0].ExerciseName)
	require.Len(t, detail.Exercises[0].Sets, 2)
	assert.Equal(t, 1, detail.Exercises[0].Sets[0].SetNumber)
	assert.Equal(t, "Romanian Deadlift", detail.Exercises[1].ExerciseName)

	_, err = env.sessions.Detail(ctx, profile.ID, "missing")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	count, err := env.sessions.WeeklyCount(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	last, err := env.sessions.LastSession(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Upper A", last.WorkoutName)

	// Saturday 7 June
	env.advance(3)
	cal, err := env.sessions.Calendar(ctx, profile.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, time.June, cal.Month)

	days := map[int]struct{ completed, planned, missed bool }{}
	for _, week := range cal.Weeks {
		for _, d := range week {
			if d.Day > 0 {
				days[d.Day] = struct{ completed, planned, missed bool }{d.Completed, d.Planned, d.Missed}
			}
		}
	}
	assert.Equal(t, struct{ completed, planned, missed bool }{true, true, false}, days[2])
	assert.Equal(t, struct{ completed, planned, missed bool }{true, true, false}, days[4])
	assert.Equal(t, struct{ completed, planned, missed bool }{false, true, true}, days[6])
	assert.Equal(t, struct{ completed, planned, missed bool }{false, false, false}, days[7])
	assert.Equal(t, struct{ completed, planned, missed bool }{false, true, false}, days[9], "future days are not missed")

	// a new week has started
	env.advance(2)
	count, err = env.sessions.WeeklyCount(ctx, profile.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = env.sessions.Calendar(ctx, profile.ID, 2025, 13)
	assert.Error(t, err)
}

func TestSessionService_CalendarWithoutPlan(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	_, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		Sets: []service.SetInput{{ExerciseName: "Run"}},
	})
	require.NoError(t, err)

	cal, err := env.sessions.Calendar(ctx, profile.ID, 2025, time.June)
	require.NoError(t, err)
	for _, week := range cal.Weeks {
		for _, d := range week {
			assert.False(t, d.Planned)
			assert.False(t, d.Missed)
			assert.Equal(t, d.Day == 2, d.Completed)
		}
	}
}

func TestSessionService_LogDropsNonFiniteNumbers(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	session, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		Feeling: "Inf",
		Sets: []service.SetInput{
			{ExerciseName: "Bench", SetNumber: "1e30", Weight: "NaN", Reps: "Inf", RPE: "8.7"},
			{ExerciseName: "Bench", SetNumber: "2", Weight: "inf", Reps: "1e30", RPE: "-Infinity"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, session.Feeling)
	require.Len(t, session.Sets, 2)
	for _, set := range session.Sets {
		assert.Nil(t, set.Weight)
		assert.Nil(t, set.Reps)
		assert.Nil(t, set.RPE)
	}
	assert.Equal(t, 1, session.Sets[0].SetNumber)

	history, err := env.sessions.History(ctx, profile.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	_, err = json.Marshal(history)
	assert.NoError(t, err)

	perf, err := env.sessions.LastPerformance(ctx, profile.ID, "Bench")
	require.NoError(t, err)
	if perf != nil {
		assert.Nil(t, perf.MaxWeight)
		_, err = json.Marshal(perf)
		assert.NoError(t, err)
	}
}
