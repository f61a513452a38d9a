package mongo

import (
	"context"
	"errors"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fitnessTestCollectionName = "fitness_tests"

type mongoFitnessTestRepository struct {
	collection *mongo.Collection
}

func NewMongoFitnessTestRepository(db *mongo.Database) repository.FitnessTestRepository {
	return &mongoFitnessTestRepository{
		collection: db.Collection(fitnessTestCollectionName),
	}
}

func (r *mongoFitnessTestRepository) Create(ctx context.Context, test *domain.FitnessTest) error {
	if test.ProfileID == "" {
		return errors.New("fitness test requires profileId")
	}
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, test)
	return err
}

func (r *mongoFitnessTestRepository) Latest(ctx context.Context, profileID string) (*domain.FitnessTest, error) {
	var test domain.FitnessTest
	opts := options.FindOne().SetSort(bson.D{{Key: "testDate", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"profileId": profileID}, opts).Decode(&test)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

func (r *mongoFitnessTestRepository) List(ctx context.Context, profileID string) ([]domain.FitnessTest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "testDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"profileId": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tests := []domain.FitnessTest{}
	if err = cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func EnsureFitnessTestIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "profileId", Value: 1}, {Key: "testDate", Value: -1}}},
	})
}
