package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/ai"
	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/export"
	"alcyxob/fitlocal/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func TestReviewService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)
	plan := env.activatePlan(t, profile.ID)

	latest, err := env.reviews.Latest(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = env.reviews.Generate(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrNoSessions)

	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		PlannedWorkoutID: workoutByName(t, plan, "Lower A").ID,
		Feeling:          5,
		Sets:             []service.SetInput{{ExerciseName: "Goblet Squat", SetNumber: 1, Weight: 135, Reps: 10}},
	})
	require.NoError(t, err)
	env.advance(1)
	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{
		Notes: "easy jog",
		Sets:  []service.SetInput{{ExerciseName: "Run"}},
	})
	require.NoError(t, err)

	// generation failure stores nothing
	env.gen.EXPECT().GenerateReview(gomock.Any(), gomock.Any()).Return(nil, ai.ErrMalformedReview)
	_, err = env.reviews.Generate(ctx, profile.ID)
	assert.ErrorIs(t, err, ai.ErrMalformedReview)
	latest, err = env.reviews.Latest(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	result := &domain.ReviewResult{
		WhatsWorking:      "Squats trending up",
		WatchOutFor:       "Only two sessions",
		Suggestions:       []string{"Add a third day", "Track sleep", "Deload in week 4"},
		OverallAssessment: "Good start",
	}
	env.gen.EXPECT().GenerateReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.ReviewRequest) (*domain.ReviewResult, error) {
			assert.Equal(t, "Sam", req.Profile.Name)
			require.Len(t, req.Sessions, 2)
			assert.Equal(t, domain.UnplannedWorkoutName, req.Sessions[0].WorkoutName, "newest first")
			assert.Equal(t, "easy jog", req.Sessions[0].Notes)
			assert.Equal(t, "Lower A", req.Sessions[1].WorkoutName)
			assert.Equal(t, "2025-06-02", req.Sessions[1].Date)
			require.Len(t, req.Sessions[1].Sets, 1)
			assert.Equal(t, 135.0, *req.Sessions[1].Sets[0].Weight)
			return result, nil
		})

	view, err := env.reviews.Generate(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Good start", view.Review.ReviewText)
	assert.JSONEq(t, `{"sessions_count": 2}`, view.Review.DataSummary)

	latest, err = env.reviews.Latest(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, view.Review.ID, latest.Review.ID)
	assert.Equal(t, result, latest.Result)
}

func TestFitnessService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	status, err := env.fitness.Status(ctx, profile.ID)
	require.NoError(t, err)
	assert.True(t, status.Eligible)

	first, err := env.fitness.Create(ctx, profile.ID, service.FitnessTestInput{
		Pushups:            "22",
		Pullups:            "none",
		WallSitSeconds:     90.0,
		ToeTouchInches:     "-1.5",
		VerticalJumpInches: " 15.5 ",
		Notes:              "left knee sore",
	})
	require.NoError(t, err)
	assert.Equal(t, 22, *first.Pushups)
	assert.Nil(t, first.Pullups)
	assert.Equal(t, 90, *first.WallSitSeconds)
	assert.Equal(t, -1.5, *first.ToeTouchInches)
	assert.Nil(t, first.PlankSeconds)
	assert.Equal(t, 15.5, *first.VerticalJumpInches)

	env.advance(10)
	_, err = env.fitness.Create(ctx, profile.ID, service.FitnessTestInput{Pushups: 25})
	assert.ErrorIs(t, err, service.ErrRetestTooSoon)
	status, err = env.fitness.Status(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, status.Eligible)
	assert.Equal(t, 20, status.DaysRemaining)

	env.advance(20)
	second, err := env.fitness.Create(ctx, profile.ID, service.FitnessTestInput{Pushups: 25})
	require.NoError(t, err)

	tests, err := env.fitness.List(ctx, profile.ID)
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, second.ID, tests[0].ID, "newest first")
	assert.Equal(t, first.ID, tests[1].ID)
}

func TestFitnessService_DropsNonFiniteNumbers(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	test, err := env.fitness.Create(ctx, profile.ID, service.FitnessTestInput{
		Pushups:            "Inf",
		Pullups:            "12.5",
		WallSitSeconds:     "1e30",
		ToeTouchInches:     "NaN",
		PlankSeconds:       "-Infinity",
		VerticalJumpInches: "Infinity",
	})
	require.NoError(t, err)
	assert.Nil(t, test.Pushups)
	assert.Nil(t, test.Pullups)
	assert.Nil(t, test.WallSitSeconds)
	assert.Nil(t, test.ToeTouchInches)
	assert.Nil(t, test.PlankSeconds)
	assert.Nil(t, test.VerticalJumpInches)

	tests, err := env.fitness.List(ctx, profile.ID)
	require.NoError(t, err)
	_, err = json.Marshal(tests)
	assert.NoError(t, err)
}

type fakeFileStorage struct {
	objects    map[string][]byte
	presignErr error
	deleted    []string
}

func (f *fakeFileStorage) PutObject(_ context.Context, key, _ string, body io.ReadSeeker) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://files.example/" + key + "?sig=1", nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func TestExportService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	_, err := env.sessions.Log(ctx, profile.ID, service.LogSessionInput{Sets: []service.SetInput{
		{ExerciseName: "Squat", SetNumber: 2, Weight: 140, Reps: 8},
		{ExerciseName: "Squat", SetNumber: 1, Weight: 135, Reps: 10},
	}})
	require.NoError(t, err)

	clock := service.FixedClock(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))
	exports := service.NewExportService(env.repos.Sessions, nil, clock)

	var buf bytes.Buffer
	filename, err := exports.Write(ctx, profile.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, "fitlocal_log_2025-06-03.xlsx", filename)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2025-06-02", "", "Squat", "1", "135", "10"}, rows[1])
	assert.Equal(t, []string{"2025-06-02", "", "Squat", "2", "140", "8"}, rows[2])

	_, err = exports.Archive(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrStorageDisabled)

	files := &fakeFileStorage{objects: map[string][]byte{}}
	archiving := service.NewExportService(env.repos.Sessions, files, clock)
	archived, err := archiving.Archive(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, filename, archived.Filename)
	assert.Contains(t, archived.DownloadURL, archived.ObjectKey)
	assert.NotEmpty(t, files.objects[archived.ObjectKey])

	files.presignErr = errors.New("signing failed")
	_, err = archiving.Archive(ctx, profile.ID)
	assert.Error(t, err)
	assert.Len(t, files.objects, 1, "unsigned upload was removed")
	assert.Len(t, files.deleted, 1)
}

func TestDashboardService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	d, err := env.dashboard.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monday", d.Today)
	assert.Nil(t, d.TodayWorkout)
	assert.Nil(t, d.Progress)
	assert.Nil(t, d.LastSession)
	assert.False(t, d.HasPending)

	env.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, ai.PlanRequest) (*domain.PlanDocument, error) {
			return domain.ParsePlanDocument([]byte(`{"plan_name": "Quick", "workouts": []}`))
		})
	_, err = env.plans.Generate(ctx, profile.ID)
	require.NoError(t, err)
	d, err = env.dashboard.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.True(t, d.HasPending)

	env.activatePlan(t, profile.ID)
	_, err = env.sessions.Log(ctx, profile.ID, service.LogSessionInput{Sets: []service.SetInput{{ExerciseName: "Bike"}}})
	require.NoError(t, err)

	d, err = env.dashboard.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, d.HasPending)
	assert.Equal(t, "Foundations 12", d.PlanName)
	require.NotNil(t, d.TodayWorkout)
	assert.Equal(t, "Lower A", d.TodayWorkout.Name)
	assert.Equal(t, 1, d.DaysTrained)
	assert.Equal(t, 1, d.Streak.Current)
	require.NotNil(t, d.LastSession)
	require.NotNil(t, d.Progress)
	assert.Equal(t, 1, d.Progress.Week)
	require.NotNil(t, d.Nutrition)
	assert.Equal(t, "Base", d.Nutrition.PhaseName)
	assert.Contains(t, d.Nutrition.Guide, "protein")

	_, err = env.dashboard.Get(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}
