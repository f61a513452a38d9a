package ai

import (
	"context"
	"errors"

	"alcyxob/fitlocal/internal/domain"
)

//go:generate mockgen -source=$GOFILE -destination=aimock/generator.go -package=aimock

var (
	ErrEmptyResponse   = errors.New("generator returned no text")
	ErrMalformedReview = errors.New("malformed review response")
)

// PlanRequest carries what a plan is tailored to. FitnessTest is nil when the
// profile has never been benchmarked.
type PlanRequest struct {
	Profile     domain.Profile
	FitnessTest *domain.FitnessTest
}

type ReviewRequest struct {
	Profile  domain.Profile
	Sessions []domain.SessionSummary
}

// Generator produces plan documents and progress reviews. Implementations do
// not retry; a failed call is reported to the caller as is.
type Generator interface {
	// GeneratePlan returns a parsed and validated plan document. Output that does
	// not parse is reported as a *domain.DocumentError.
	GeneratePlan(ctx context.Context, req PlanRequest) (*domain.PlanDocument, error)
	GenerateReview(ctx context.Context, req ReviewRequest) (*domain.ReviewResult, error)
}
