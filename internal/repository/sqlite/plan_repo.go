package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

func (r *planRepository) StorePending(ctx context.Context, profileID, name string, document json.RawMessage) (*domain.Plan, error) {
	now := time.Now().UTC()
	row := Plan{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Status:      string(domain.PlanPending),
		Name:        name,
		DaysPerWeek: domain.DefaultDaysPerWeek,
		TotalWeeks:  domain.DefaultTotalWeeks,
		CurrentWeek: 1,
		Document:    string(document),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ? AND status = ?", profileID, domain.PlanPending).Delete(&Plan{}).Error; err != nil {
			return fmt.Errorf("failed to discard pending plan: %w", err)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return planToDomain(row), nil
}

func (r *planRepository) GetPending(ctx context.Context, profileID string) (*domain.Plan, error) {
	var row Plan
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND status = ?", profileID, domain.PlanPending).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return planToDomain(row), nil
}

func (r *planRepository) Activate(ctx context.Context, profileID, pendingID string, plan *domain.Plan) error {
	row, phases, workouts, exercises := planFromDomain(plan)
	row.ProfileID = profileID
	row.IsActive = true
	row.Status = string(domain.PlanActive)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Delete the pending plan
		res := tx.Where("id = ? AND profile_id = ? AND status = ?", pendingID, profileID, domain.PlanPending).Delete(&Plan{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete pending plan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}

		// 2. Supersede the active plan, if any
		err := tx.Model(&Plan{}).
			Where("profile_id = ? AND is_active = ?", profileID, true).
			Updates(map[string]interface{}{
				"is_active":  false,
				"status":     string(domain.PlanSuperseded),
				"updated_at": time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to deactivate plan: %w", err)
		}

		// 3. Insert the new plan
		if err := tx.Omit("Phases", "Workouts").Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}

		// 4. Phases, workouts and their exercises
		if len(phases) > 0 {
			if err := tx.Create(&phases).Error; err != nil {
				return fmt.Errorf("failed to insert phases: %w", err)
			}
		}
		if len(workouts) > 0 {
			if err := tx.Omit("Exercises").Create(&workouts).Error; err != nil {
				return fmt.Errorf("failed to insert workouts: %w", err)
			}
		}
		if len(exercises) > 0 {
			if err := tx.Create(&exercises).Error; err != nil {
				return fmt.Errorf("failed to insert exercises: %w", err)
			}
		}
		return nil
	})
}

func (r *planRepository) GetActive(ctx context.Context, profileID string) (*domain.Plan, error) {
	var row Plan
	err := r.db.WithContext(ctx).
		Preload("Phases", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Workouts", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Preload("Workouts.Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("profile_id = ? AND is_active = ?", profileID, true).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return planToDomain(row), nil
}

func (r *planRepository) UpdateCurrentWeek(ctx context.Context, planID string, week int) error {
	res := r.db.WithContext(ctx).Model(&Plan{}).Where("id = ?", planID).Update("current_week", week)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *planRepository) CountActive(ctx context.Context, profileID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Plan{}).Where("profile_id = ? AND is_active = ?", profileID, true).Count(&n).Error
	return int(n), err
}
