package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/training"
)

// Dashboard is the landing view: today, this week and where the plan stands.
type Dashboard struct {
	Profile      *domain.Profile        `json:"profile"`
	Today        string                 `json:"today"`
	Date         time.Time              `json:"date"`
	PlanName     string                 `json:"planName,omitempty"`
	TodayWorkout *domain.PlannedWorkout `json:"todayWorkout,omitempty"`
	DaysTrained  int                    `json:"daysTrainedThisWeek"`
	LastSession  *domain.WorkoutSession `json:"lastSession,omitempty"`
	Streak       StreakView             `json:"streak"`
	Progress     *training.Progress     `json:"progress,omitempty"`
	Nutrition    *Nutrition             `json:"nutrition,omitempty"`
	HasPending   bool                   `json:"hasPendingPlan"`
}

type StreakView struct {
	Current     int        `json:"current"`
	Longest     int        `json:"longest"`
	LastWorkout *time.Time `json:"lastWorkout,omitempty"`
}

type DashboardService interface {
	Get(ctx context.Context, profileID string) (*Dashboard, error)
}

type dashboardService struct {
	profiles ProfileService
	plans    PlanService
	sessions SessionService
	clock    Clock
}

func NewDashboardService(profiles ProfileService, plans PlanService, sessions SessionService, clock Clock) DashboardService {
	return &dashboardService{
		profiles: profiles,
		plans:    plans,
		sessions: sessions,
		clock:    clock,
	}
}

func (s *dashboardService) Get(ctx context.Context, profileID string) (*Dashboard, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	today := s.clock.today()
	streak := profile.Streak()
	d := &Dashboard{
		Profile: profile,
		Today:   today.Weekday().String(),
		Date:    today,
		Streak: StreakView{
			Current:     streak.Current,
			Longest:     streak.Longest,
			LastWorkout: streak.LastWorkout,
		},
	}

	plan, err := s.plans.GetActive(ctx, profileID)
	switch {
	case err == nil:
		d.PlanName = plan.Name
		d.TodayWorkout = plan.WorkoutForDay(today.Weekday())
		d.Progress = training.ProgressOf(plan, today)
		if d.Progress.Phase != nil {
			d.Nutrition = &Nutrition{
				Week:      d.Progress.Week,
				PhaseName: d.Progress.Phase.Name,
				PhaseType: d.Progress.Phase.Type,
				Guide:     d.Progress.Phase.NutritionGuide,
			}
		}
	case !errors.Is(err, ErrNoActivePlan):
		return nil, err
	}

	if _, err = s.plans.GetPending(ctx, profileID); err == nil {
		d.HasPending = true
	} else if !errors.Is(err, ErrNoPendingPlan) {
		return nil, err
	}

	if d.DaysTrained, err = s.sessions.WeeklyCount(ctx, profileID); err != nil {
		return nil, err
	}
	if d.LastSession, err = s.sessions.LastSession(ctx, profileID); err != nil {
		return nil, err
	}
	return d, nil
}
