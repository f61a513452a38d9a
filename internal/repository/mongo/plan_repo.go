package mongo

import (
	"context"
	"encoding/json"
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

const (
	planCollectionName           = "plans"
	plannedWorkoutCollectionName = "planned_workouts"
)

// mongoPlanRepository keeps plans (phases embedded) in one collection and their
// workouts (exercises embedded) in another.
type mongoPlanRepository struct {
	db       *mongo.Database
	plans    *mongo.Collection
	workouts *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		db:       db,
		plans:    db.Collection(planCollectionName),
		workouts: db.Collection(plannedWorkoutCollectionName),
	}
}

func (r *mongoPlanRepository) StorePending(ctx context.Context, profileID, name string, document json.RawMessage) (*domain.Plan, error) {
	if profileID == "" || name == "" {
		return nil, errors.New("pending plan requires profileId and name")
	}
	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Name:        name,
		DaysPerWeek: domain.DefaultDaysPerWeek,
		TotalWeeks:  domain.DefaultTotalWeeks,
		CurrentWeek: 1,
		Status:      domain.PlanPending,
		Document:    document,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.plans.DeleteMany(sc, bson.M{"profileId": profileID, "status": domain.PlanPending}); err != nil {
			return fmt.Errorf("failed to discard pending plan: %w", err)
		}
		_, err := r.plans.InsertOne(sc, plan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *mongoPlanRepository) GetPending(ctx context.Context, profileID string) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"profileId": profileID, "status": domain.PlanPending}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.plans.FindOne(ctx, filter, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Activate swaps plan in as the single active plan of the profile.
func (r *mongoPlanRepository) Activate(ctx context.Context, profileID, pendingID string, plan *domain.Plan) error {
	plan.ProfileID = profileID
	plan.IsActive = true
	plan.Status = domain.PlanActive

	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		// 1. Delete the pending plan
		res, err := r.plans.DeleteOne(sc, bson.M{"_id": pendingID, "profileId": profileID, "status": domain.PlanPending})
		if err != nil {
			return fmt.Errorf("failed to delete pending plan: %w", err)
		}
		if res.DeletedCount == 0 {
			return repository.ErrNotFound
		}

		// 2. Supersede the active plan, if any
		filter := bson.M{"profileId": profileID, "isActive": true}
		update := bson.M{"$set": bson.M{
			"isActive":  false,
			"status":    domain.PlanSuperseded,
			"updatedAt": time.Now().UTC(),
		}}
		if _, err := r.plans.UpdateMany(sc, filter, update); err != nil {
			return fmt.Errorf("failed to deactivate plan: %w", err)
		}

		// 3. and 4. Insert the plan, phases embedded
		if _, err := r.plans.InsertOne(sc, plan); err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}

		// 5. Workouts with their exercises
		if len(plan.Workouts) == 0 {
			return nil
		}
		docs := make([]interface{}, 0, len(plan.Workouts))
		for i := range plan.Workouts {
			plan.Workouts[i].PlanID = plan.ID
			docs = append(docs, plan.Workouts[i])
		}
		if _, err := r.workouts.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("failed to insert workouts: %w", err)
		}
		return nil
	})
}

func (r *mongoPlanRepository) GetActive(ctx context.Context, profileID string) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.plans.FindOne(ctx, bson.M{"profileId": profileID, "isActive": true}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})
	cursor, err := r.workouts.Find(ctx, bson.M{"planId": plan.ID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plan.Workouts); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *mongoPlanRepository) UpdateCurrentWeek(ctx context.Context, planID string, week int) error {
	update := bson.M{"$set": bson.M{"currentWeek": week, "updatedAt": time.Now().UTC()}}
	result, err := r.plans.UpdateOne(ctx, bson.M{"_id": planID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoPlanRepository) CountActive(ctx context.Context, profileID string) (int, error) {
	n, err := r.plans.CountDocuments(ctx, bson.M{"profileId": profileID, "isActive": true})
	return int(n), err
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			// At most one active plan per profile
			Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
	})
}

func EnsurePlannedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "planId", Value: 1}, {Key: "orderIndex", Value: 1}}},
	})
}
