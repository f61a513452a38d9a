package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"
)

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	Name         string `json:"name" binding:"required"`
	Age          int    `json:"age"`
	Sex          string `json:"sex"`
	FitnessLevel string `json:"fitnessLevel"`
	Goals        string `json:"goals"`
}

type ProfileService interface {
	// Get returns the install's profile or ErrProfileNotFound.
	Get(ctx context.Context) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// Save creates the profile on first use and updates it afterwards.
	Save(ctx context.Context, input ProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Save(ctx context.Context, input ProfileInput) (*domain.Profile, error) {
	// 1. Validate Input
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if input.Age < 0 || input.Age > 120 {
		return nil, fmt.Errorf("%w: age out of range", ErrInvalidProfile)
	}

	// 2. Load the existing profile, if any
	profile, err := s.Get(ctx)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	if profile == nil {
		profile = &domain.Profile{}
	}

	// 3. Apply and persist
	profile.Name = input.Name
	profile.Age = input.Age
	profile.Sex = strings.TrimSpace(input.Sex)
	profile.FitnessLevel = strings.TrimSpace(input.FitnessLevel)
	profile.Goals = strings.TrimSpace(input.Goals)

	if err = s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}
