package sqlite

import (
	"context"

	"alcyxob/fitlocal/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fitnessTestRepository struct {
	db *gorm.DB
}

func (r *fitnessTestRepository) Create(ctx context.Context, test *domain.FitnessTest) error {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	row := FitnessTest{
		ID:                 test.ID,
		ProfileID:          test.ProfileID,
		TestDate:           test.TestDate,
		Pushups:            test.Pushups,
		Pullups:            test.Pullups,
		WallSitSeconds:     test.WallSitSeconds,
		ToeTouchInches:     test.ToeTouchInches,
		PlankSeconds:       test.PlankSeconds,
		VerticalJumpInches: test.VerticalJumpInches,
		Notes:              test.Notes,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *fitnessTestRepository) Latest(ctx context.Context, profileID string) (*domain.FitnessTest, error) {
	var row FitnessTest
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("test_date DESC, created_at DESC").First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	t := fitnessTestToDomain(row)
	return &t, nil
}

func (r *fitnessTestRepository) List(ctx context.Context, profileID string) ([]domain.FitnessTest, error) {
	var rows []FitnessTest
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("test_date DESC, created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	tests := make([]domain.FitnessTest, 0, len(rows))
	for _, row := range rows {
		tests = append(tests, fitnessTestToDomain(row))
	}
	return tests, nil
}
