package service

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fitlocal/internal/ai"
	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"
	"alcyxob/fitlocal/internal/training"

	log "github.com/sirupsen/logrus"
)

// PendingPlan is a generated plan awaiting confirmation.
type PendingPlan struct {
	Plan     *domain.Plan         `json:"plan"`
	Document *domain.PlanDocument `json:"document"`
}

// Nutrition is the guidance of the phase the active plan is in.
type Nutrition struct {
	Week      int              `json:"week"`
	PhaseName string           `json:"phaseName"`
	PhaseType domain.PhaseType `json:"phaseType"`
	Guide     string           `json:"guide"`
}

type PlanService interface {
	// Generate asks the generator for a plan and stores it as the profile's
	// pending plan. Nothing is stored when generation or parsing fails.
	Generate(ctx context.Context, profileID string) (*PendingPlan, error)
	GetPending(ctx context.Context, profileID string) (*PendingPlan, error)
	// Activate promotes a pending plan, the newest one when pendingID is empty,
	// starting today. Returns ErrNoPendingPlan when there is nothing to promote.
	Activate(ctx context.Context, profileID, pendingID string) (*domain.Plan, error)
	// GetActive returns the active plan with its current week recomputed.
	GetActive(ctx context.Context, profileID string) (*domain.Plan, error)
	// Progress is nil, without error, when no plan is active.
	Progress(ctx context.Context, profileID string) (*training.Progress, error)
	// Nutrition is nil, without error, when no plan is active or no phase covers the week.
	Nutrition(ctx context.Context, profileID string) (*Nutrition, error)
}

type planService struct {
	planRepo        repository.PlanRepository
	profileRepo     repository.ProfileRepository
	fitnessTestRepo repository.FitnessTestRepository
	generator       ai.Generator
	clock           Clock
}

func NewPlanService(
	planRepo repository.PlanRepository,
	profileRepo repository.ProfileRepository,
	fitnessTestRepo repository.FitnessTestRepository,
	generator ai.Generator,
	clock Clock,
) PlanService {
	return &planService{
		planRepo:        planRepo,
		profileRepo:     profileRepo,
		fitnessTestRepo: fitnessTestRepo,
		generator:       generator,
		clock:           clock,
	}
}

func (s *planService) Generate(ctx context.Context, profileID string) (*PendingPlan, error) {
	// 1. Gather what the plan is tailored to
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	var latestTest *domain.FitnessTest
	latestTest, err = s.fitnessTestRepo.Latest(ctx, profileID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load latest fitness test: %w", err)
	}

	// 2. Generate; a document that does not parse never reaches storage
	doc, err := s.generator.GeneratePlan(ctx, ai.PlanRequest{Profile: *profile, FitnessTest: latestTest})
	if err != nil {
		return nil, err
	}

	// 3. Replace any earlier pending plan
	plan, err := s.planRepo.StorePending(ctx, profileID, doc.PlanName, doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("failed to store pending plan: %w", err)
	}

	log.Infof("stored pending plan %s (%q, %d workouts, %d exercises)", plan.ID, doc.PlanName, len(doc.Workouts), doc.ExerciseCount())
	return &PendingPlan{Plan: plan, Document: doc}, nil
}

func (s *planService) GetPending(ctx context.Context, profileID string) (*PendingPlan, error) {
	plan, err := s.planRepo.GetPending(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPendingPlan
		}
		return nil, err
	}

	doc, err := domain.ParsePlanDocument(plan.Document)
	if err != nil {
		return nil, fmt.Errorf("stored pending plan %s: %w", plan.ID, err)
	}
	return &PendingPlan{Plan: plan, Document: doc}, nil
}

func (s *planService) Activate(ctx context.Context, profileID, pendingID string) (*domain.Plan, error) {
	// 1. Resolve the pending plan
	var pending *domain.Plan
	var err error
	if pendingID == "" {
		pending, err = s.planRepo.GetPending(ctx, profileID)
	} else {
		pending, err = s.pendingByID(ctx, profileID, pendingID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPendingPlan
		}
		return nil, err
	}

	// 2. Normalize the stored document into phases, workouts and exercises
	doc, err := domain.ParsePlanDocument(pending.Document)
	if err != nil {
		return nil, fmt.Errorf("stored pending plan %s: %w", pending.ID, err)
	}
	plan := doc.BuildPlan(profileID, s.clock.today())

	// 3. Swap atomically
	if err = s.planRepo.Activate(ctx, profileID, pending.ID, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPendingPlan
		}
		return nil, fmt.Errorf("failed to activate plan: %w", err)
	}

	log.Infof("activated plan %s (%q) for profile %s", plan.ID, plan.Name, profileID)
	return plan, nil
}

// pendingByID only accepts the profile's current pending plan.
func (s *planService) pendingByID(ctx context.Context, profileID, pendingID string) (*domain.Plan, error) {
	pending, err := s.planRepo.GetPending(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if pending.ID != pendingID {
		return nil, repository.ErrNotFound
	}
	return pending, nil
}

func (s *planService) GetActive(ctx context.Context, profileID string) (*domain.Plan, error) {
	plan, err := s.planRepo.GetActive(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	// current week is a cache; the start date is the source of truth
	week := training.CurrentWeek(plan.StartDate, plan.TotalWeeks, s.clock.today())
	if week != plan.CurrentWeek {
		if err := s.planRepo.UpdateCurrentWeek(ctx, plan.ID, week); err != nil {
			log.Warnf("failed to cache current week %d of plan %s: %s", week, plan.ID, err)
		}
		plan.CurrentWeek = week
	}
	return plan, nil
}

func (s *planService) Progress(ctx context.Context, profileID string) (*training.Progress, error) {
	plan, err := s.GetActive(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrNoActivePlan) {
			return nil, nil
		}
		return nil, err
	}
	return training.ProgressOf(plan, s.clock.today()), nil
}

func (s *planService) Nutrition(ctx context.Context, profileID string) (*Nutrition, error) {
	progress, err := s.Progress(ctx, profileID)
	if err != nil || progress == nil || progress.Phase == nil {
		return nil, err
	}
	return &Nutrition{
		Week:      progress.Week,
		PhaseName: progress.Phase.Name,
		PhaseType: progress.Phase.Type,
		Guide:     progress.Phase.NutritionGuide,
	}, nil
}
