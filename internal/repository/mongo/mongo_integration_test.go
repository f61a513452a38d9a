//go:build integration

package mongo

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/domain/domaintest"
	"alcyxob/fitlocal/internal/repository"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoRepositorySuite struct {
	suite.Suite

	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
	client     *mongo.Client
	db         *mongo.Database
	repos      repository.Repositories
	profile    *domain.Profile
}

func TestMongoRepositorySuite(t *testing.T) {
	suite.Run(t, new(MongoRepositorySuite))
}

func (s *MongoRepositorySuite) SetupSuite() {
	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}
	if err = s.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	// transactions need a replica set, a single member one is enough
	s.resource, err = s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("run mongo: %s", err)
	}

	uri := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", s.resource.GetPort("27017/tcp"))
	s.dockerPool.MaxWait = 2 * time.Minute

	initiated := false
	err = s.dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.client == nil {
			client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
			if err != nil {
				return err
			}
			s.client = client
		}
		if !initiated {
			cmd := bson.D{{Key: "replSetInitiate", Value: bson.M{
				"_id":     "rs0",
				"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
			}}}
			if err := s.client.Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
				return err
			}
			initiated = true
		}
		return s.client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		s.TearDownSuite()
		log.Fatalf("mongo not ready: %s", err)
	}

	s.db = s.client.Database("fitlocal_test")
	EnsureIndexes(context.Background(), s.db)
	s.repos = NewRepositories(s.db)
}

func (s *MongoRepositorySuite) TearDownSuite() {
	if s.client != nil {
		_ = DisconnectDB(s.client)
	}
	if s.resource != nil {
		if err := s.resource.Close(); err != nil {
			fmt.Printf("mongo teardown: %s\n", err)
		}
	}
}

func (s *MongoRepositorySuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.db.Drop(ctx))
	EnsureIndexes(ctx, s.db)

	s.profile = &domain.Profile{Name: "Sam", Age: 34, Sex: "male", FitnessLevel: "Beginner", Goals: "Lose fat"}
	s.Require().NoError(s.repos.Profiles.Save(ctx, s.profile))
}

func (s *MongoRepositorySuite) TestProfileDefault() {
	got, err := s.repos.Profiles.GetDefault(context.Background())
	s.Require().NoError(err)
	s.Equal(s.profile.ID, got.ID)
	s.Equal("Lose fat", got.Goals)
}

func (s *MongoRepositorySuite) TestActivateRoundTrip() {
	ctx := context.Background()
	doc := domaintest.ParsedTwelveWeekPlan(s.T())

	pending, err := s.repos.Plans.StorePending(ctx, s.profile.ID, doc.PlanName, doc.Raw())
	s.Require().NoError(err)

	plan := doc.BuildPlan(s.profile.ID, time.Now())
	s.Require().NoError(s.repos.Plans.Activate(ctx, s.profile.ID, pending.ID, plan))

	_, err = s.repos.Plans.GetPending(ctx, s.profile.ID)
	s.ErrorIs(err, repository.ErrNotFound)

	active, err := s.repos.Plans.GetActive(ctx, s.profile.ID)
	s.Require().NoError(err)
	s.Equal(plan.ID, active.ID)
	s.Len(active.Phases, 6)
	s.Require().Len(active.Workouts, 3)
	total := 0
	for _, w := range active.Workouts {
		total += len(w.Exercises)
	}
	s.Equal(12, total)
	s.JSONEq(domaintest.TwelveWeekPlan, string(active.Document))

	// a second activation supersedes the first
	pending, err = s.repos.Plans.StorePending(ctx, s.profile.ID, doc.PlanName, doc.Raw())
	s.Require().NoError(err)
	next := doc.BuildPlan(s.profile.ID, time.Now())
	s.Require().NoError(s.repos.Plans.Activate(ctx, s.profile.ID, pending.ID, next))

	n, err := s.repos.Plans.CountActive(ctx, s.profile.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	err = s.repos.Plans.Activate(ctx, s.profile.ID, pending.ID, doc.BuildPlan(s.profile.ID, time.Now()))
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *MongoRepositorySuite) TestSessionsAndLastPerformance() {
	ctx := context.Background()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	w1, w2 := 135.0, 140.0
	r1, r2 := 10, 8

	a := &domain.WorkoutSession{ProfileID: s.profile.ID, Date: day, StartTime: day.Add(9 * time.Hour),
		Sets: []domain.LoggedSet{{ExerciseName: "Squat", SetNumber: 1, Weight: &w1, Reps: &r1}}}
	b := &domain.WorkoutSession{ProfileID: s.profile.ID, Date: day.AddDate(0, 0, 2), StartTime: day.Add(57 * time.Hour),
		Sets: []domain.LoggedSet{
			{ExerciseName: "Squat", SetNumber: 1, Weight: &w2, Reps: &r2},
			{ExerciseName: "Row", SetNumber: 1},
		}}

	s.profile.CurrentStreak, s.profile.LongestStreak = 2, 2
	s.Require().NoError(s.repos.Sessions.Record(ctx, a, s.profile))
	s.Require().NoError(s.repos.Sessions.Record(ctx, b, s.profile))

	latest, err := s.repos.Sessions.LatestWithExercise(ctx, s.profile.ID, "Squat")
	s.Require().NoError(err)
	s.Equal(b.ID, latest.ID)
	s.Require().Len(latest.Sets, 1)
	s.Equal(140.0, *latest.Sets[0].Weight)

	n, err := s.repos.Sessions.CountSince(ctx, s.profile.ID, day.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Equal(1, n)

	profile, err := s.repos.Profiles.GetByID(ctx, s.profile.ID)
	s.Require().NoError(err)
	s.Equal(2, profile.CurrentStreak)

	err = s.repos.Sessions.Record(ctx, &domain.WorkoutSession{ProfileID: s.profile.ID, Date: day}, &domain.Profile{ID: "ghost"})
	s.ErrorIs(err, repository.ErrNotFound)
	all, err := s.repos.Sessions.List(ctx, s.profile.ID, 0)
	s.Require().NoError(err)
	s.Len(all, 2, "failed record rolled back")
}
