package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"
	"alcyxob/fitlocal/internal/training"

	log "github.com/sirupsen/logrus"
)

// PerformanceCache memoizes last-performance lookups between session logs.
type PerformanceCache interface {
	Get(profileID, exercise string) (*training.Performance, bool)
	Set(profileID, exercise string, perf *training.Performance)
	Clear()
}

// SetInput is one submitted set. Numeric fields take numbers or strings;
// anything unparseable is stored as empty.
type SetInput struct {
	ExerciseName string `json:"exerciseName"`
	SetNumber    any    `json:"setNumber"`
	Weight       any    `json:"weight"`
	Reps         any    `json:"reps"`
	RPE          any    `json:"rpe"`
	Notes        string `json:"notes"`
}

type LogSessionInput struct {
	PlannedWorkoutID string     `json:"plannedWorkoutId"`
	Feeling          any        `json:"feeling"`
	Notes            string     `json:"notes"`
	StartTime        *time.Time `json:"startTime"`
	Sets             []SetInput `json:"sets"`
}

// ExerciseWithPerformance is a planned exercise next to how it went last time.
type ExerciseWithPerformance struct {
	domain.PlannedExercise
	LastPerformance *training.Performance `json:"lastPerformance,omitempty"`
}

// TodayWorkout is today's schedule. Workout is nil on a rest day.
type TodayWorkout struct {
	Day       string                    `json:"day"`
	Date      time.Time                 `json:"date"`
	PlanID    string                    `json:"planId"`
	Workout   *domain.PlannedWorkout    `json:"workout,omitempty"`
	Exercises []ExerciseWithPerformance `json:"exercises"`
}

type ExerciseSets struct {
	ExerciseName string             `json:"exerciseName"`
	Sets         []domain.LoggedSet `json:"sets"`
}

// SessionDetail groups a session's sets by exercise, in exercise name order.
type SessionDetail struct {
	Session     *domain.WorkoutSession `json:"session"`
	WorkoutName string                 `json:"workoutName"`
	Exercises   []ExerciseSets         `json:"exercises"`
}

type SessionService interface {
	// TodayWorkout returns ErrNoActivePlan when nothing is scheduled at all.
	TodayWorkout(ctx context.Context, profileID string) (*TodayWorkout, error)
	// Log records a session dated today and advances the streak, atomically.
	Log(ctx context.Context, profileID string, input LogSessionInput) (*domain.WorkoutSession, error)
	History(ctx context.Context, profileID string, limit int) ([]domain.WorkoutSession, error)
	Detail(ctx context.Context, profileID, sessionID string) (*SessionDetail, error)
	// Calendar renders a month; a zero year or month means the current one.
	Calendar(ctx context.Context, profileID string, year int, month time.Month) (*training.Calendar, error)
	// WeeklyCount counts sessions since Monday of the current week.
	WeeklyCount(ctx context.Context, profileID string) (int, error)
	// LastPerformance is nil, without error, for an exercise never logged.
	LastPerformance(ctx context.Context, profileID, exercise string) (*training.Performance, error)
	LastSession(ctx context.Context, profileID string) (*domain.WorkoutSession, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	plans       PlanService
	cache       PerformanceCache
	clock       Clock
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	plans PlanService,
	cache PerformanceCache,
	clock Clock,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		plans:       plans,
		cache:       cache,
		clock:       clock,
	}
}

func (s *sessionService) TodayWorkout(ctx context.Context, profileID string) (*TodayWorkout, error) {
	plan, err := s.plans.GetActive(ctx, profileID)
	if err != nil {
		return nil, err
	}

	today := s.clock.today()
	result := &TodayWorkout{
		Day:       today.Weekday().String(),
		Date:      today,
		PlanID:    plan.ID,
		Exercises: []ExerciseWithPerformance{},
	}

	workout := plan.WorkoutForDay(today.Weekday())
	if workout == nil {
		return result, nil
	}
	result.Workout = workout

	exercises := make([]domain.PlannedExercise, len(workout.Exercises))
	copy(exercises, workout.Exercises)
	domain.SortExercises(exercises)

	for _, ex := range exercises {
		perf, err := s.LastPerformance(ctx, profileID, ex.Name)
		if err != nil {
			return nil, err
		}
		result.Exercises = append(result.Exercises, ExerciseWithPerformance{PlannedExercise: ex, LastPerformance: perf})
	}
	return result, nil
}

func (s *sessionService) Log(ctx context.Context, profileID string, input LogSessionInput) (*domain.WorkoutSession, error) {
	now := s.clock()
	today := domain.DateOf(now)

	// 1. Load the profile whose streak moves
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	session := &domain.WorkoutSession{
		ProfileID: profileID,
		Date:      today,
		StartTime: now.UTC(),
		Feeling:   lenientInt(input.Feeling),
		Notes:     strings.TrimSpace(input.Notes),
		Sets:      []domain.LoggedSet{},
	}
	end := now.UTC()
	session.EndTime = &end
	if input.StartTime != nil && !input.StartTime.IsZero() && input.StartTime.Before(now) {
		session.StartTime = input.StartTime.UTC()
	}

	// 2. Resolve the planned workout against the active plan
	if id := strings.TrimSpace(input.PlannedWorkoutID); id != "" {
		workout, err := s.findWorkout(ctx, profileID, id)
		if err != nil {
			return nil, err
		}
		session.PlannedWorkoutID = &workout.ID
		session.WorkoutName = workout.Name
	}

	// 3. Parse sets leniently
	for _, in := range input.Sets {
		name := strings.TrimSpace(in.ExerciseName)
		if name == "" {
			continue
		}
		setNumber := 1
		if n := lenientInt(in.SetNumber); n != nil && *n > 0 {
			setNumber = *n
		}
		session.Sets = append(session.Sets, domain.LoggedSet{
			ExerciseName: name,
			SetNumber:    setNumber,
			Weight:       lenientFloat(in.Weight),
			Reps:         lenientInt(in.Reps),
			RPE:          lenientInt(in.RPE),
			Notes:        strings.TrimSpace(in.Notes),
		})
	}

	// 4. Advance the streak and persist both in one transaction
	if streak, changed := training.UpdateStreak(profile.Streak(), today); changed {
		profile.SetStreak(streak)
	}
	if err = s.sessionRepo.Record(ctx, session, profile); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	if s.cache != nil {
		s.cache.Clear()
	}
	log.Infof("logged session %s with %d sets, streak now %d", session.ID, len(session.Sets), profile.CurrentStreak)
	return session, nil
}

func (s *sessionService) findWorkout(ctx context.Context, profileID, workoutID string) (*domain.PlannedWorkout, error) {
	plan, err := s.plans.GetActive(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrNoActivePlan) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	for i := range plan.Workouts {
		if plan.Workouts[i].ID == workoutID {
			return &plan.Workouts[i], nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (s *sessionService) History(ctx context.Context, profileID string, limit int) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.List(ctx, profileID, limit)
}

func (s *sessionService) Detail(ctx context.Context, profileID, sessionID string) (*SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, profileID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	sets := make([]domain.LoggedSet, len(session.Sets))
	copy(sets, session.Sets)
	domain.SortSets(sets)

	detail := &SessionDetail{
		Session:     session,
		WorkoutName: session.DisplayWorkoutName(),
		Exercises:   []ExerciseSets{},
	}
	for _, set := range sets {
		n := len(detail.Exercises)
		if n == 0 || detail.Exercises[n-1].ExerciseName != set.ExerciseName {
			detail.Exercises = append(detail.Exercises, ExerciseSets{ExerciseName: set.ExerciseName})
			n++
		}
		detail.Exercises[n-1].Sets = append(detail.Exercises[n-1].Sets, set)
	}
	return detail, nil
}

func (s *sessionService) Calendar(ctx context.Context, profileID string, year int, month time.Month) (*training.Calendar, error) {
	today := s.clock.today()
	if year == 0 || month == 0 {
		year, month = today.Year(), today.Month()
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	from, to := training.MonthRange(year, month)
	dates, err := s.sessionRepo.DatesBetween(ctx, profileID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load session dates: %w", err)
	}

	var plannedDays []time.Weekday
	plan, err := s.plans.GetActive(ctx, profileID)
	switch {
	case err == nil:
		plannedDays = plan.TrainingDays()
	case errors.Is(err, ErrNoActivePlan):
		// nothing planned, only completed days show
	default:
		return nil, err
	}

	cal := training.BuildCalendar(year, month, dates, plannedDays, today)
	return &cal, nil
}

func (s *sessionService) WeeklyCount(ctx context.Context, profileID string) (int, error) {
	return s.sessionRepo.CountSince(ctx, profileID, training.WeekStart(s.clock.today()))
}

func (s *sessionService) LastPerformance(ctx context.Context, profileID, exercise string) (*training.Performance, error) {
	if s.cache != nil {
		if perf, ok := s.cache.Get(profileID, exercise); ok {
			return perf, nil
		}
	}

	session, err := s.sessionRepo.LatestWithExercise(ctx, profileID, exercise)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up last %s: %w", exercise, err)
	}

	var perf *training.Performance
	if session != nil {
		perf = training.BestInSession(*session, exercise)
	}
	if s.cache != nil {
		s.cache.Set(profileID, exercise, perf)
	}
	return perf, nil
}

func (s *sessionService) LastSession(ctx context.Context, profileID string) (*domain.WorkoutSession, error) {
	sessions, err := s.sessionRepo.List(ctx, profileID, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}
