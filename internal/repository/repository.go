package repository

import (
	"context"
	"encoding/json"
	"time"

	"alcyxob/fitlocal/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores the install's profile.
type ProfileRepository interface {
	// GetDefault returns the oldest profile, the one an install runs as.
	GetDefault(ctx context.Context) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// Save creates the profile when ID is empty, otherwise updates its attributes.
	// Streak fields are only written by SessionRepository.Record.
	Save(ctx context.Context, profile *domain.Profile) error
}

// PlanRepository persists plans: at most one pending and one active per profile.
type PlanRepository interface {
	// StorePending discards any pending plan of the profile and stores document verbatim.
	StorePending(ctx context.Context, profileID, name string, document json.RawMessage) (*domain.Plan, error)
	// GetPending returns the newest pending plan or ErrNotFound.
	GetPending(ctx context.Context, profileID string) (*domain.Plan, error)
	// Activate deletes the pending plan, supersedes the active one and inserts
	// plan with its phases, workouts and exercises, all in one transaction.
	// Returns ErrNotFound, with nothing written, if pendingID is not pending.
	Activate(ctx context.Context, profileID, pendingID string, plan *domain.Plan) error
	// GetActive returns the active plan with phases, workouts and exercises loaded, or ErrNotFound.
	GetActive(ctx context.Context, profileID string) (*domain.Plan, error)
	UpdateCurrentWeek(ctx context.Context, planID string, week int) error
	// CountActive is used to check the single active plan invariant.
	CountActive(ctx context.Context, profileID string) (int, error)
}

// SessionRepository stores logged sessions. Sets always travel with their session.
type SessionRepository interface {
	// Record inserts session with its sets and writes the profile's streak fields
	// in the same transaction.
	Record(ctx context.Context, session *domain.WorkoutSession, profile *domain.Profile) error
	GetByID(ctx context.Context, profileID, id string) (*domain.WorkoutSession, error)
	// List returns sessions newest first. limit <= 0 means all.
	List(ctx context.Context, profileID string, limit int) ([]domain.WorkoutSession, error)
	// ListChronological returns every session oldest first, sets sorted by exercise and set number.
	ListChronological(ctx context.Context, profileID string) ([]domain.WorkoutSession, error)
	// DatesBetween returns session dates in [from, to).
	DatesBetween(ctx context.Context, profileID string, from, to time.Time) ([]time.Time, error)
	CountSince(ctx context.Context, profileID string, since time.Time) (int, error)
	// LatestWithExercise returns the most recent session holding at least one
	// set named exactly exercise, or ErrNotFound.
	LatestWithExercise(ctx context.Context, profileID, exercise string) (*domain.WorkoutSession, error)
}

// FitnessTestRepository stores benchmark snapshots. Tests are append-only.
type FitnessTestRepository interface {
	Create(ctx context.Context, test *domain.FitnessTest) error
	// Latest returns the test with the newest test date or ErrNotFound.
	Latest(ctx context.Context, profileID string) (*domain.FitnessTest, error)
	// List returns tests newest first.
	List(ctx context.Context, profileID string) ([]domain.FitnessTest, error)
}

// ReviewRepository stores generated progress reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Latest(ctx context.Context, profileID string) (*domain.Review, error)
}

// Repositories bundles one backend's repositories.
type Repositories struct {
	Profiles     ProfileRepository
	Plans        PlanRepository
	Sessions     SessionRepository
	FitnessTests FitnessTestRepository
	Reviews      ReviewRepository
}
