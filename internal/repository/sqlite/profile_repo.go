package sqlite

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func (r *profileRepository) GetDefault(ctx context.Context) (*domain.Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return profileToDomain(p), nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return profileToDomain(p), nil
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if profile.Name == "" {
		return errors.New("profile name is required")
	}
	now := time.Now().UTC()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
		profile.CreatedAt = now
		profile.UpdatedAt = now
		row := Profile{
			ID:           profile.ID,
			Name:         profile.Name,
			Age:          profile.Age,
			Sex:          profile.Sex,
			FitnessLevel: profile.FitnessLevel,
			Goals:        profile.Goals,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return r.db.WithContext(ctx).Create(&row).Error
	}

	result := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"name":          profile.Name,
		"age":           profile.Age,
		"sex":           profile.Sex,
		"fitness_level": profile.FitnessLevel,
		"goals":         profile.Goals,
		"updated_at":    now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = now
	return nil
}
