package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"
	"github.com/Sudhikumaran/Protena-ai/internal/repository"
)

var (
	ErrNoWorkoutsScheduled = errors.New("no workouts scheduled")
	ErrWorkoutNotFound     = errors.New("workout not found")
)

// TodaySchedule pairs the session the athlete should do now with the
// uncompleted sessions that follow it.
type TodaySchedule struct {
	Workout  domain.DailyWorkout   `json:"workout"`
	Upcoming []domain.DailyWorkout `json:"upcoming"`
}

// WorkoutCompletion is the result of marking a workout done: the updated
// record, the remaining uncompleted sessions and the next one up.
type WorkoutCompletion struct {
	Workout     domain.DailyWorkout   `json:"workout"`
	Upcoming    []domain.DailyWorkout `json:"upcoming"`
	NextWorkout *domain.DailyWorkout  `json:"nextWorkout"`
}

type WorkoutService interface {
	TodayWorkout(ctx context.Context, userID string) (*TodaySchedule, error)
	CompleteWorkout(ctx context.Context, userID, workoutID string) (*WorkoutCompletion, error)
}

type workoutService struct {
	athleteRepo repository.AthleteRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewWorkoutService(athleteRepo repository.AthleteRepository, logger *slog.Logger) WorkoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &workoutService{
		athleteRepo: athleteRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// upcomingWorkouts lists the uncompleted sessions other than currentID,
// capped at three.
func upcomingWorkouts(workouts []domain.DailyWorkout, currentID string) []domain.DailyWorkout {
	upcoming := make([]domain.DailyWorkout, 0, 3)
	for i := range workouts {
		w := workouts[i]
		if w.ID == currentID || w.Completed {
			continue
		}
		upcoming = append(upcoming, w)
		if len(upcoming) == 3 {
			break
		}
	}
	return upcoming
}

// TodayWorkout picks the session scheduled for the current date. When no
// session matches today it falls forward to the first uncompleted one, and
// failing that returns the last session so the client always has
// something to render while a plan exists.
func (s *workoutService) TodayWorkout(ctx context.Context, userID string) (*TodaySchedule, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if len(athlete.DailyWorkouts) == 0 {
		return nil, ErrNoWorkoutsScheduled
	}

	var workout *domain.DailyWorkout
	today := s.now().Format("2006-01-02")
	for i := range athlete.DailyWorkouts {
		if athlete.DailyWorkouts[i].ScheduledFor == today {
			workout = &athlete.DailyWorkouts[i]
			break
		}
	}
	if workout == nil {
		for i := range athlete.DailyWorkouts {
			if !athlete.DailyWorkouts[i].Completed {
				workout = &athlete.DailyWorkouts[i]
				break
			}
		}
	}
	if workout == nil {
		workout = &athlete.DailyWorkouts[len(athlete.DailyWorkouts)-1]
	}

	return &TodaySchedule{
		Workout:  *workout,
		Upcoming: upcomingWorkouts(athlete.DailyWorkouts, workout.ID),
	}, nil
}

// CompleteWorkout marks the given session done and reports what remains.
// Upcoming is capped at three entries.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID, workoutID string) (*WorkoutCompletion, error) {
	athlete, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	var target *domain.DailyWorkout
	for i := range athlete.DailyWorkouts {
		if athlete.DailyWorkouts[i].ID == workoutID {
			target = &athlete.DailyWorkouts[i]
			break
		}
	}
	if target == nil {
		return nil, ErrWorkoutNotFound
	}

	completedAt := s.now().UTC().Format(time.RFC3339)
	if err := s.athleteRepo.CompleteWorkout(ctx, userID, workoutID, completedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	target.Completed = true
	target.CompletedAt = completedAt

	upcoming := upcomingWorkouts(athlete.DailyWorkouts, workoutID)

	result := &WorkoutCompletion{
		Workout:  *target,
		Upcoming: upcoming,
	}
	if len(upcoming) > 0 {
		next := upcoming[0]
		result.NextWorkout = &next
	}
	return result, nil
}
