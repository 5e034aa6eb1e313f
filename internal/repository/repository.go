package repository

import (
	"context"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound         = RepositoryError("not found")
	ErrUpdateFailed     = RepositoryError("update failed")
	ErrDuplicateEmail   = RepositoryError("user with this email already exists")
	ErrDuplicateAthlete = RepositoryError("athlete for this user already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// AthleteRepository defines the interface for interacting with athlete documents.
// One document per user; writes are single-document atomic updates.
type AthleteRepository interface {
	Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Athlete, error)
	// Save replaces the full document for the athlete's user.
	Save(ctx context.Context, athlete *domain.Athlete) error
	// ReplacePlan swaps the plan tracks and daily workouts in one update,
	// so callers never observe a partially generated plan.
	ReplacePlan(ctx context.Context, userID string, tracks []domain.PlanTrack, workouts []domain.DailyWorkout) error
	// CompleteWorkout marks one daily workout as done in place.
	CompleteWorkout(ctx context.Context, userID, workoutID, completedAt string) error
}
