package api

import (
	"errors"
	"net/http"

	"github.com/Sudhikumaran/Protena-ai/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler exposes the daily workout endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// Today returns the session the athlete should do now.
// GET /api/workouts/today
func (h *WorkoutHandler) Today(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	schedule, err := h.workoutService.TodayWorkout(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound):
			abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
		case errors.Is(err, service.ErrNoWorkoutsScheduled):
			abortWithError(c, http.StatusNotFound, "No workouts scheduled. Generate a plan first.")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// Complete marks one workout as done.
// POST /api/workouts/:workoutId/complete
func (h *WorkoutHandler) Complete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	result, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, c.Param("workoutId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound):
			abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
