package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"alcyxob/fitlocal/internal/ai"
	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ReviewView is a stored review with its structured result, when that still parses.
type ReviewView struct {
	Review *domain.Review       `json:"review"`
	Result *domain.ReviewResult `json:"result,omitempty"`
}

type ReviewService interface {
	// Generate reviews the most recent sessions. Returns ErrNoSessions when
	// there is nothing to review; a failed generation stores nothing.
	Generate(ctx context.Context, profileID string) (*ReviewView, error)
	// Latest returns nil, without error, when no review exists yet.
	Latest(ctx context.Context, profileID string) (*ReviewView, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	generator   ai.Generator
	clock       Clock
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	generator ai.Generator,
	clock Clock,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		generator:   generator,
		clock:       clock,
	}
}

type dataSummary struct {
	SessionsCount int `json:"sessions_count"`
}

func (s *reviewService) Generate(ctx context.Context, profileID string) (*ReviewView, error) {
	// 1. Load the profile and its recent history
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx, profileID, domain.ReviewSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}

	summaries := make([]domain.SessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = domain.Summarize(session)
	}

	// 2. Ask the generator
	result, err := s.generator.GenerateReview(ctx, ai.ReviewRequest{Profile: *profile, Sessions: summaries})
	if err != nil {
		return nil, err
	}

	// 3. Persist the result verbatim next to a summary of what was reviewed
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	summaryJSON, err := json.Marshal(dataSummary{SessionsCount: len(summaries)})
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		ProfileID:       profileID,
		CreatedAt:       s.clock().UTC(),
		ReviewText:      result.OverallAssessment,
		SuggestionsJSON: string(resultJSON),
		DataSummary:     string(summaryJSON),
	}
	if err = s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	log.Infof("stored review %s over %d sessions", review.ID, len(summaries))
	return &ReviewView{Review: review, Result: result}, nil
}

func (s *reviewService) Latest(ctx context.Context, profileID string) (*ReviewView, error) {
	review, err := s.reviewRepo.Latest(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	view := &ReviewView{Review: review}
	if review.SuggestionsJSON != "" {
		var result domain.ReviewResult
		if err := json.Unmarshal([]byte(review.SuggestionsJSON), &result); err != nil {
			log.Warnf("review %s has unreadable suggestions: %s", review.ID, err)
		} else {
			view.Result = &result
		}
	}
	return view, nil
}
