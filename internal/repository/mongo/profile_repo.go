package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository
type mongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetDefault returns the oldest profile.
func (r *mongoProfileRepository) GetDefault(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *mongoProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save inserts a new profile or updates the attributes of an existing one.
func (r *mongoProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if profile.Name == "" {
		return errors.New("profile name is required")
	}
	now := time.Now().UTC()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
		profile.CreatedAt = now
		profile.UpdatedAt = now
		_, err := r.collection.InsertOne(ctx, profile)
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"name":         profile.Name,
			"age":          profile.Age,
			"sex":          profile.Sex,
			"fitnessLevel": profile.FitnessLevel,
			"goals":        profile.Goals,
			"updatedAt":    now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = now
	return nil
}

// EnsureProfileIndexes creates necessary indexes. Call during startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
}
