package sqlite

import (
	"context"
	"time"

	"alcyxob/fitlocal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	row := Review{
		ID:              review.ID,
		ProfileID:       review.ProfileID,
		CreatedAt:       review.CreatedAt,
		ReviewText:      review.ReviewText,
		SuggestionsJSON: review.SuggestionsJSON,
		DataSummary:     review.DataSummary,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *reviewRepository) Latest(ctx context.Context, profileID string) (*domain.Review, error) {
	var row Review
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("created_at DESC").First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return reviewToDomain(row), nil
}
