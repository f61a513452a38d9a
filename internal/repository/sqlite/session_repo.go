package sqlite

import (
	"context"
	"fmt"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func (r *sessionRepository) Record(ctx context.Context, session *domain.WorkoutSession, profile *domain.Profile) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	for i := range session.Sets {
		if session.Sets[i].ID == "" {
			session.Sets[i].ID = uuid.NewString()
		}
		session.Sets[i].SessionID = session.ID
	}
	row := sessionFromDomain(session)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		res := tx.Model(&Profile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
			"current_streak":    profile.CurrentStreak,
			"longest_streak":    profile.LongestStreak,
			"last_workout_date": profile.LastWorkoutDate,
			"updated_at":        time.Now().UTC(),
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update streak: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *sessionRepository) GetByID(ctx context.Context, profileID, id string) (*domain.WorkoutSession, error) {
	var row WorkoutSession
	err := r.db.WithContext(ctx).Preload("Sets").Where("id = ? AND profile_id = ?", id, profileID).First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	s := sessionToDomain(row)
	return &s, nil
}

func (r *sessionRepository) List(ctx context.Context, profileID string, limit int) ([]domain.WorkoutSession, error) {
	q := r.db.WithContext(ctx).Preload("Sets").
		Where("profile_id = ?", profileID).
		Order("date DESC, start_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return r.find(q)
}

func (r *sessionRepository) ListChronological(ctx context.Context, profileID string) ([]domain.WorkoutSession, error) {
	q := r.db.WithContext(ctx).Preload("Sets").
		Where("profile_id = ?", profileID).
		Order("date ASC, start_time ASC")
	return r.find(q)
}

func (r *sessionRepository) find(q *gorm.DB) ([]domain.WorkoutSession, error) {
	var rows []WorkoutSession
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	sessions := make([]domain.WorkoutSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, sessionToDomain(row))
	}
	return sessions, nil
}

func (r *sessionRepository) DatesBetween(ctx context.Context, profileID string, from, to time.Time) ([]time.Time, error) {
	var rows []WorkoutSession
	err := r.db.WithContext(ctx).Select("date").
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date.UTC())
	}
	return dates, nil
}

func (r *sessionRepository) CountSince(ctx context.Context, profileID string, since time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&WorkoutSession{}).
		Where("profile_id = ? AND date >= ?", profileID, since).
		Count(&n).Error
	return int(n), err
}

func (r *sessionRepository) LatestWithExercise(ctx context.Context, profileID, exercise string) (*domain.WorkoutSession, error) {
	var row WorkoutSession
	err := r.db.WithContext(ctx).
		Preload("Sets", "exercise_name = ?", exercise).
		Where("profile_id = ?", profileID).
		Where("id IN (?)", r.db.Model(&LoggedSet{}).Select("session_id").Where("exercise_name = ?", exercise)).
		Order("date DESC, start_time DESC").
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	s := sessionToDomain(row)
	return &s, nil
}
