package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "sessions"

// mongoSessionRepository stores sessions with their sets embedded.
type mongoSessionRepository struct {
	db       *mongo.Database
	sessions *mongo.Collection
	profiles *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		db:       db,
		sessions: db.Collection(sessionCollectionName),
		profiles: db.Collection(profileCollectionName),
	}
}

func (r *mongoSessionRepository) Record(ctx context.Context, session *domain.WorkoutSession, profile *domain.Profile) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	for i := range session.Sets {
		if session.Sets[i].ID == "" {
			session.Sets[i].ID = uuid.NewString()
		}
		session.Sets[i].SessionID = session.ID
	}
	if session.Sets == nil {
		session.Sets = []domain.LoggedSet{}
	}

	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.sessions.InsertOne(sc, session); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"currentStreak":   profile.CurrentStreak,
			"longestStreak":   profile.LongestStreak,
			"lastWorkoutDate": profile.LastWorkoutDate,
			"updatedAt":       time.Now().UTC(),
		}}
		res, err := r.profiles.UpdateOne(sc, bson.M{"_id": profile.ID}, update)
		if err != nil {
			return fmt.Errorf("failed to update streak: %w", err)
		}
		if res.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *mongoSessionRepository) GetByID(ctx context.Context, profileID, id string) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.sessions.FindOne(ctx, bson.M{"_id": id, "profileId": profileID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	domain.SortSets(session.Sets)
	return &session, nil
}

func (r *mongoSessionRepository) List(ctx context.Context, profileID string, limit int) ([]domain.WorkoutSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"profileId": profileID}, opts)
}

func (r *mongoSessionRepository) ListChronological(ctx context.Context, profileID string) ([]domain.WorkoutSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	return r.find(ctx, bson.M{"profileId": profileID}, opts)
}

func (r *mongoSessionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.WorkoutSession, error) {
	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.WorkoutSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		domain.SortSets(sessions[i].Sets)
	}
	return sessions, nil
}

func (r *mongoSessionRepository) DatesBetween(ctx context.Context, profileID string, from, to time.Time) ([]time.Time, error) {
	filter := bson.M{"profileId": profileID, "date": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetProjection(bson.M{"date": 1})
	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date time.Time `bson:"date"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date.UTC())
	}
	return dates, nil
}

func (r *mongoSessionRepository) CountSince(ctx context.Context, profileID string, since time.Time) (int, error) {
	n, err := r.sessions.CountDocuments(ctx, bson.M{"profileId": profileID, "date": bson.M{"$gte": since}})
	return int(n), err
}

// LatestWithExercise keeps only the sets of exercise on the returned session.
func (r *mongoSessionRepository) LatestWithExercise(ctx context.Context, profileID, exercise string) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"profileId": profileID, "sets.exerciseName": exercise}
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}})
	err := r.sessions.FindOne(ctx, filter, opts).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	matching := session.Sets[:0]
	for _, set := range session.Sets {
		if set.ExerciseName == exercise {
			matching = append(matching, set)
		}
	}
	session.Sets = matching
	domain.SortSets(session.Sets)
	return &session, nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "date", Value: -1}, {Key: "startTime", Value: -1}}},
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "sets.exerciseName", Value: 1}}},
	})
}
