package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"
	"github.com/Sudhikumaran/Protena-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const athleteCollectionName = "athletes"

// mongoAthleteRepository implements repository.AthleteRepository using MongoDB.
type mongoAthleteRepository struct {
	collection *mongo.Collection
}

// NewMongoAthleteRepository creates a new instance of mongoAthleteRepository.
func NewMongoAthleteRepository(db *mongo.Database) repository.AthleteRepository {
	return &mongoAthleteRepository{
		collection: db.Collection(athleteCollectionName),
	}
}

// Create inserts a new athlete document.
func (r *mongoAthleteRepository) Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error) {
	if athlete.UserID == "" {
		return primitive.NilObjectID, errors.New("athlete user ID is required")
	}

	athlete.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	athlete.CreatedAt = now
	athlete.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, athlete)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateAthlete
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the athlete document owned by the given user.
func (r *mongoAthleteRepository) GetByUserID(ctx context.Context, userID string) (*domain.Athlete, error) {
	var athlete domain.Athlete
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&athlete)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &athlete, nil
}

// Save replaces the full athlete document for its user.
func (r *mongoAthleteRepository) Save(ctx context.Context, athlete *domain.Athlete) error {
	if athlete.UserID == "" {
		return errors.New("athlete user ID is required")
	}
	athlete.UpdatedAt = time.Now().UTC()

	filter := bson.M{"userId": athlete.UserID}
	result, err := r.collection.ReplaceOne(ctx, filter, athlete)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplacePlan swaps planTracks and dailyWorkouts in a single update so the
// change is atomic at the document level.
func (r *mongoAthleteRepository) ReplacePlan(ctx context.Context, userID string, tracks []domain.PlanTrack, workouts []domain.DailyWorkout) error {
	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{
			"planTracks":    tracks,
			"dailyWorkouts": workouts,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CompleteWorkout sets the completed flag on one daily workout using a
// positional update against the embedded array.
func (r *mongoAthleteRepository) CompleteWorkout(ctx context.Context, userID, workoutID, completedAt string) error {
	filter := bson.M{"userId": userID, "dailyWorkouts.id": workoutID}
	update := bson.M{
		"$set": bson.M{
			"dailyWorkouts.$.completed":   true,
			"dailyWorkouts.$.completedAt": completedAt,
			"updatedAt":                   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAthleteIndexes creates necessary indexes for the athletes collection.
func EnsureAthleteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "profile.email", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("failed to create athlete indexes", "error", err)
	}
}
