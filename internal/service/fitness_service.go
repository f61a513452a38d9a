package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"
)

// FitnessTestInput takes numbers or numeric strings; blanks stay unmeasured.
type FitnessTestInput struct {
	Pushups            any    `json:"pushups"`
	Pullups            any    `json:"pullups"`
	WallSitSeconds     any    `json:"wallSitSeconds"`
	ToeTouchInches     any    `json:"toeTouchInches"`
	PlankSeconds       any    `json:"plankSeconds"`
	VerticalJumpInches any    `json:"verticalJumpInches"`
	Notes              string `json:"notes"`
}

type FitnessService interface {
	// Create records a test dated today. Returns ErrRetestTooSoon inside the retest interval.
	Create(ctx context.Context, profileID string, input FitnessTestInput) (*domain.FitnessTest, error)
	List(ctx context.Context, profileID string) ([]domain.FitnessTest, error)
	Status(ctx context.Context, profileID string) (domain.RetestStatus, error)
}

type fitnessService struct {
	fitnessTestRepo repository.FitnessTestRepository
	clock           Clock
}

func NewFitnessService(fitnessTestRepo repository.FitnessTestRepository, clock Clock) FitnessService {
	return &fitnessService{fitnessTestRepo: fitnessTestRepo, clock: clock}
}

func (s *fitnessService) Create(ctx context.Context, profileID string, input FitnessTestInput) (*domain.FitnessTest, error) {
	status, err := s.Status(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !status.Eligible {
		return nil, fmt.Errorf("%w: %d days remaining", ErrRetestTooSoon, status.DaysRemaining)
	}

	test := &domain.FitnessTest{
		ProfileID:          profileID,
		TestDate:           s.clock.today(),
		Pushups:            lenientInt(input.Pushups),
		Pullups:            lenientInt(input.Pullups),
		WallSitSeconds:     lenientInt(input.WallSitSeconds),
		ToeTouchInches:     lenientFloat(input.ToeTouchInches),
		PlankSeconds:       lenientInt(input.PlankSeconds),
		VerticalJumpInches: lenientFloat(input.VerticalJumpInches),
		Notes:              strings.TrimSpace(input.Notes),
	}
	if err = s.fitnessTestRepo.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("failed to store fitness test: %w", err)
	}
	return test, nil
}

func (s *fitnessService) List(ctx context.Context, profileID string) ([]domain.FitnessTest, error) {
	return s.fitnessTestRepo.List(ctx, profileID)
}

func (s *fitnessService) Status(ctx context.Context, profileID string) (domain.RetestStatus, error) {
	latest, err := s.fitnessTestRepo.Latest(ctx, profileID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.RetestStatus{}, err
	}
	return domain.RetestStatusFor(latest, s.clock.today()), nil
}
