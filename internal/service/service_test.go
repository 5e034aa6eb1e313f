package service

import (
	"context"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"
	"github.com/Sudhikumaran/Protena-ai/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAthleteRepo is an in-memory AthleteRepository keyed by user ID.
type stubAthleteRepo struct {
	athletes     map[string]*domain.Athlete
	replacedWith []domain.PlanTrack
	replaceErr   error
}

func newStubAthleteRepo(athletes ...*domain.Athlete) *stubAthleteRepo {
	repo := &stubAthleteRepo{athletes: make(map[string]*domain.Athlete)}
	for _, a := range athletes {
		repo.athletes[a.UserID] = a
	}
	return repo
}

func (r *stubAthleteRepo) Create(ctx context.Context, athlete *domain.Athlete) (primitive.ObjectID, error) {
	if _, ok := r.athletes[athlete.UserID]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateAthlete
	}
	id := primitive.NewObjectID()
	athlete.ID = id
	r.athletes[athlete.UserID] = athlete
	return id, nil
}

func (r *stubAthleteRepo) GetByUserID(ctx context.Context, userID string) (*domain.Athlete, error) {
	athlete, ok := r.athletes[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *athlete
	return &copied, nil
}

func (r *stubAthleteRepo) Save(ctx context.Context, athlete *domain.Athlete) error {
	if _, ok := r.athletes[athlete.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.athletes[athlete.UserID] = athlete
	return nil
}

func (r *stubAthleteRepo) ReplacePlan(ctx context.Context, userID string, tracks []domain.PlanTrack, workouts []domain.DailyWorkout) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	athlete, ok := r.athletes[userID]
	if !ok {
		return repository.ErrNotFound
	}
	athlete.PlanTracks = tracks
	athlete.DailyWorkouts = workouts
	r.replacedWith = tracks
	return nil
}

func (r *stubAthleteRepo) CompleteWorkout(ctx context.Context, userID, workoutID, completedAt string) error {
	athlete, ok := r.athletes[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range athlete.DailyWorkouts {
		if athlete.DailyWorkouts[i].ID == workoutID {
			athlete.DailyWorkouts[i].Completed = true
			athlete.DailyWorkouts[i].CompletedAt = completedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

// stubCompletion returns a canned response or error.
type stubCompletion struct {
	content     string
	err         error
	lastSystem  string
	lastUser    string
	temperature float64
	calls       int
}

func (s *stubCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	s.temperature = temperature
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func testAthlete(userID string) *domain.Athlete {
	athlete := domain.NewBaseAthlete()
	athlete.UserID = userID
	return athlete
}

var fixedTime = time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
