package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/ai"
	"alcyxob/fitlocal/internal/ai/aimock"
	"alcyxob/fitlocal/internal/cache"
	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/domain/domaintest"
	"alcyxob/fitlocal/internal/repository"
	"alcyxob/fitlocal/internal/repository/sqlite"
	"alcyxob/fitlocal/internal/service"
	"alcyxob/fitlocal/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Monday
var planStart = time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	now   time.Time
	repos repository.Repositories
	gen   *aimock.MockGenerator

	profiles  service.ProfileService
	plans     service.PlanService
	sessions  service.SessionService
	reviews   service.ReviewService
	fitness   service.FitnessService
	dashboard service.DashboardService
}

func newTestEnv(t *testing.T, fileStorage storage.FileStorage) *testEnv {
	t.Helper()
	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "fitlocal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{
		now:   planStart,
		repos: store.Repositories(),
		gen:   aimock.NewMockGenerator(gomock.NewController(t)),
	}
	clock := service.Clock(func() time.Time { return env.now })

	env.profiles = service.NewProfileService(env.repos.Profiles)
	env.plans = service.NewPlanService(env.repos.Plans, env.repos.Profiles, env.repos.FitnessTests, env.gen, clock)
	env.sessions = service.NewSessionService(env.repos.Sessions, env.repos.Profiles, env.plans, cache.NewPerformanceCache(1), clock)
	env.reviews = service.NewReviewService(env.repos.Reviews, env.repos.Sessions, env.repos.Profiles, env.gen, clock)
	env.fitness = service.NewFitnessService(env.repos.FitnessTests, clock)
	env.dashboard = service.NewDashboardService(env.profiles, env.plans, env.sessions, clock)
	return env
}

func (e *testEnv) advance(days int) {
	e.now = e.now.AddDate(0, 0, days)
}

func (e *testEnv) setupProfile(t *testing.T) *domain.Profile {
	t.Helper()
	profile, err := e.profiles.Save(context.Background(), service.ProfileInput{
		Name: "Sam", Age: 34, Sex: "male", FitnessLevel: "Beginner", Goals: "Lose fat",
	})
	require.NoError(t, err)
	return profile
}

// activatePlan generates the sample plan and activates it as of e.now.
func (e *testEnv) activatePlan(t *testing.T, profileID string) *domain.Plan {
	t.Helper()
	ctx := context.Background()
	e.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).Return(domaintest.ParsedTwelveWeekPlan(t), nil)
	_, err := e.plans.Generate(ctx, profileID)
	require.NoError(t, err)
	plan, err := e.plans.Activate(ctx, profileID, "")
	require.NoError(t, err)
	return plan
}

func TestProfileService(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.profiles.Get(ctx)
	assert.ErrorIs(t, err, service.ErrProfileNotFound)

	_, err = env.profiles.Save(ctx, service.ProfileInput{Name: "   "})
	assert.ErrorIs(t, err, service.ErrInvalidProfile)
	_, err = env.profiles.Save(ctx, service.ProfileInput{Name: "Sam", Age: -1})
	assert.ErrorIs(t, err, service.ErrInvalidProfile)

	created := env.setupProfile(t)
	assert.NotEmpty(t, created.ID)
	assert.Zero(t, created.CurrentStreak)

	updated, err := env.profiles.Save(ctx, service.ProfileInput{Name: " Sam ", Age: 35, Goals: "Run a 10k"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "single profile is updated in place")

	got, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Name)
	assert.Equal(t, 35, got.Age)
	assert.Equal(t, "Run a 10k", got.Goals)

	_, err = env.profiles.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestPlanService_GenerateUsesLatestFitnessTest(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	_, err := env.fitness.Create(ctx, profile.ID, service.FitnessTestInput{Pushups: "22"})
	require.NoError(t, err)

	env.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.PlanRequest) (*domain.PlanDocument, error) {
			assert.Equal(t, profile.ID, req.Profile.ID)
			assert.Equal(t, "Lose fat", req.Profile.Goals)
			require.NotNil(t, req.FitnessTest)
			assert.Equal(t, 22, *req.FitnessTest.Pushups)
			return domaintest.ParsedTwelveWeekPlan(t), nil
		})

	pending, err := env.plans.Generate(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPending, pending.Plan.Status)
	assert.Equal(t, "Foundations 12", pending.Plan.Name)
	assert.Len(t, pending.Document.Workouts, 3)

	got, err := env.plans.GetPending(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.Plan.ID, got.Plan.ID)
	assert.JSONEq(t, domaintest.TwelveWeekPlan, string(got.Plan.Document))
	assert.Equal(t, 12, got.Document.ExerciseCount())
}

func TestPlanService_GenerateFailureStoresNothing(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	env.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).
		Return(nil, &domain.DocumentError{Path: "plan_name", Reason: "missing"})

	_, err := env.plans.Generate(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrInvalidDocument)

	_, err = env.plans.GetPending(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrNoPendingPlan)

	env.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).Return(nil, errors.New("upstream timeout"))
	_, err = env.plans.Generate(ctx, profile.ID)
	assert.EqualError(t, err, "upstream timeout")

	_, err = env.plans.Generate(ctx, "nobody")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestPlanService_Activate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	_, err := env.plans.Activate(ctx, profile.ID, "")
	assert.ErrorIs(t, err, service.ErrNoPendingPlan)
	_, err = env.plans.GetActive(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrNoActivePlan)

	env.gen.EXPECT().GeneratePlan(gomock.Any(), gomock.Any()).Return(domaintest.ParsedTwelveWeekPlan(t), nil)
	pending, err := env.plans.Generate(ctx, profile.ID)
	require.NoError(t, err)

	_, err = env.plans.Activate(ctx, profile.ID, "not-the-pending-id")
	assert.ErrorIs(t, err, service.ErrNoPendingPlan)

	plan, err := env.plans.Activate(ctx, profile.ID, pending.Plan.ID)
	require.NoError(t, err)
	require.NotNil(t, plan.StartDate)
	assert.Equal(t, domain.DateOf(planStart), *plan.StartDate)

	active, err := env.plans.GetActive(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)
	assert.Equal(t, 1, active.CurrentWeek)
	assert.Len(t, active.Phases, 6)
	assert.Len(t, active.Workouts, 3)

	_, err = env.plans.GetPending(ctx, profile.ID)
	assert.ErrorIs(t, err, service.ErrNoPendingPlan)
	_, err = env.plans.Activate(ctx, profile.ID, pending.Plan.ID)
	assert.ErrorIs(t, err, service.ErrNoPendingPlan)

	n, err := env.repos.Plans.CountActive(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPlanService_ProgressAndNutrition(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	profile := env.setupProfile(t)

	progress, err := env.plans.Progress(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, progress)
	nutrition, err := env.plans.Nutrition(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, nutrition)

	plan := env.activatePlan(t, profile.ID)

	tests := []struct {
		days      int
		week      int
		phase     string
		phaseType domain.PhaseType
	}{
		{days: 0, week: 1, phase: "Base", phaseType: domain.PhaseProgressive},
		{days: 20, week: 3, phase: "Base", phaseType: domain.PhaseProgressive},
		{days: 21, week: 4, phase: "Deload 1", phaseType: domain.PhaseRecovery},
		{days: 49, week: 8, phase: "Deload 2", phaseType: domain.PhaseRecovery},
		{days: 400, week: 12, phase: "Taper", phaseType: domain.PhaseRecovery},
	}
	for _, tt := range tests {
		env.now = planStart.AddDate(0, 0, tt.days)
		progress, err := env.plans.Progress(ctx, profile.ID)
		require.NoError(t, err)
		require.NotNil(t, progress)
		assert.Equal(t, tt.week, progress.Week, "day %d", tt.days)
		require.NotNil(t, progress.Phase)
		assert.Equal(t, tt.phase, progress.Phase.Name)
		assert.Equal(t, tt.phaseType, progress.Phase.Type)
	}

	// the recomputed week was cached on the plan
	active, err := env.repos.Plans.GetActive(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)
	assert.Equal(t, 12, active.CurrentWeek)

	env.now = planStart.AddDate(0, 0, 22)
	nutrition, err = env.plans.Nutrition(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, nutrition)
	assert.Equal(t, 4, nutrition.Week)
	assert.Equal(t, "Keep protein high", nutrition.Guide)
	assert.Equal(t, domain.PhaseRecovery, nutrition.PhaseType)
}
