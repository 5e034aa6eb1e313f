package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/domain"
)

func newTestWorkoutService(repo *stubAthleteRepo) *workoutService {
	svc := NewWorkoutService(repo, nil).(*workoutService)
	svc.now = func() time.Time { return fixedTime }
	return svc
}

func athleteWithWorkouts(userID string, workouts ...domain.DailyWorkout) *domain.Athlete {
	athlete := testAthlete(userID)
	athlete.DailyWorkouts = workouts
	return athlete
}

func TestTodayWorkoutPrefersScheduledDate(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1", Day: "Day 1", ScheduledFor: "2026-08-28", Completed: true},
		domain.DailyWorkout{ID: "w2", Day: "Day 2", ScheduledFor: "2026-08-29"},
		domain.DailyWorkout{ID: "w3", Day: "Day 3", ScheduledFor: "2026-08-30"},
	))
	svc := newTestWorkoutService(repo)

	schedule, err := svc.TodayWorkout(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if schedule.Workout.ID != "w2" {
		t.Errorf("Expected today's workout w2, got %q", schedule.Workout.ID)
	}
	if len(schedule.Upcoming) != 1 || schedule.Upcoming[0].ID != "w3" {
		t.Errorf("Expected upcoming [w3], got %v", schedule.Upcoming)
	}
}

func TestTodayWorkoutFallsForwardToUncompleted(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1", ScheduledFor: "2026-08-20", Completed: true},
		domain.DailyWorkout{ID: "w2", ScheduledFor: "2026-08-21"},
	))
	svc := newTestWorkoutService(repo)

	schedule, err := svc.TodayWorkout(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if schedule.Workout.ID != "w2" {
		t.Errorf("Expected first uncompleted workout, got %q", schedule.Workout.ID)
	}
}

func TestTodayWorkoutUpcomingSkipsCompletedAndCurrent(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1", ScheduledFor: "2026-08-29"},
		domain.DailyWorkout{ID: "w2", ScheduledFor: "2026-08-30", Completed: true},
		domain.DailyWorkout{ID: "w3", ScheduledFor: "2026-08-31"},
		domain.DailyWorkout{ID: "w4", ScheduledFor: "2026-09-01"},
		domain.DailyWorkout{ID: "w5", ScheduledFor: "2026-09-02"},
		domain.DailyWorkout{ID: "w6", ScheduledFor: "2026-09-03"},
	))
	svc := newTestWorkoutService(repo)

	schedule, err := svc.TodayWorkout(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if schedule.Workout.ID != "w1" {
		t.Errorf("Expected today's workout w1, got %q", schedule.Workout.ID)
	}
	if len(schedule.Upcoming) != 3 {
		t.Fatalf("Expected 3 upcoming workouts, got %d", len(schedule.Upcoming))
	}
	if schedule.Upcoming[0].ID != "w3" || schedule.Upcoming[1].ID != "w4" || schedule.Upcoming[2].ID != "w5" {
		t.Errorf("Expected upcoming [w3 w4 w5], got %v", schedule.Upcoming)
	}
}

func TestTodayWorkoutReturnsLastWhenAllDone(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1", ScheduledFor: "2026-08-20", Completed: true},
		domain.DailyWorkout{ID: "w2", ScheduledFor: "2026-08-21", Completed: true},
	))
	svc := newTestWorkoutService(repo)

	schedule, err := svc.TodayWorkout(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if schedule.Workout.ID != "w2" {
		t.Errorf("Expected last workout, got %q", schedule.Workout.ID)
	}
	if len(schedule.Upcoming) != 0 {
		t.Errorf("Expected no upcoming workouts, got %v", schedule.Upcoming)
	}
}

func TestTodayWorkoutNoneScheduled(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1"))
	svc := newTestWorkoutService(repo)

	_, err := svc.TodayWorkout(context.Background(), "user-1")
	if !errors.Is(err, ErrNoWorkoutsScheduled) {
		t.Errorf("Expected ErrNoWorkoutsScheduled, got %v", err)
	}
}

func TestCompleteWorkout(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1", Day: "Day 1"},
		domain.DailyWorkout{ID: "w2", Day: "Day 2"},
		domain.DailyWorkout{ID: "w3", Day: "Day 3", Completed: true},
		domain.DailyWorkout{ID: "w4", Day: "Day 4"},
	))
	svc := newTestWorkoutService(repo)

	result, err := svc.CompleteWorkout(context.Background(), "user-1", "w1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.Workout.Completed {
		t.Error("Expected workout marked completed")
	}
	if result.Workout.CompletedAt != fixedTime.Format(time.RFC3339) {
		t.Errorf("Expected completion timestamp, got %q", result.Workout.CompletedAt)
	}
	if len(result.Upcoming) != 2 {
		t.Fatalf("Expected 2 upcoming workouts, got %d", len(result.Upcoming))
	}
	if result.Upcoming[0].ID != "w2" || result.Upcoming[1].ID != "w4" {
		t.Errorf("Expected uncompleted others in order, got %v", result.Upcoming)
	}
	if result.NextWorkout == nil || result.NextWorkout.ID != "w2" {
		t.Errorf("Expected next workout w2, got %v", result.NextWorkout)
	}

	stored, _ := repo.GetByUserID(context.Background(), "user-1")
	if !stored.DailyWorkouts[0].Completed {
		t.Error("Expected completion persisted")
	}
}

func TestCompleteLastWorkoutHasNoNext(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1",
		domain.DailyWorkout{ID: "w1"},
	))
	svc := newTestWorkoutService(repo)

	result, err := svc.CompleteWorkout(context.Background(), "user-1", "w1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Upcoming) != 0 {
		t.Errorf("Expected no upcoming workouts, got %v", result.Upcoming)
	}
	if result.NextWorkout != nil {
		t.Errorf("Expected nil next workout, got %v", result.NextWorkout)
	}
}

func TestCompleteWorkoutUnknownID(t *testing.T) {
	repo := newStubAthleteRepo(athleteWithWorkouts("user-1", domain.DailyWorkout{ID: "w1"}))
	svc := newTestWorkoutService(repo)

	_, err := svc.CompleteWorkout(context.Background(), "user-1", "nope")
	if !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("Expected ErrWorkoutNotFound, got %v", err)
	}
}
