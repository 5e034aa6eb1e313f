package api

import (
	"errors"
	"net/http"

	"github.com/Sudhikumaran/Protena-ai/internal/ai"
	"github.com/Sudhikumaran/Protena-ai/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler exposes the AI coaching endpoints.
type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// mapCoachError translates service failures shared by all coach endpoints.
func mapCoachError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAthleteNotFound):
		abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
	case errors.Is(err, ai.ErrUnconfigured):
		abortWithError(c, http.StatusServiceUnavailable, "AI service is not configured")
	case errors.Is(err, service.ErrPlanUpstream):
		abortWithError(c, http.StatusBadGateway, service.ErrPlanUpstream.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// CoachingBrief returns the daily brief for the authenticated athlete.
// GET /api/ai/coaching-brief
func (h *CoachHandler) CoachingBrief(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	brief, err := h.coachService.CoachingBrief(c.Request.Context(), userID)
	if err != nil {
		mapCoachError(c, err)
		return
	}
	c.JSON(http.StatusOK, brief)
}

// MealSuggestion estimates macros for a described meal.
// POST /api/ai/meal-suggestion
func (h *CoachHandler) MealSuggestion(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MealSuggestionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	suggestion, err := h.coachService.MealSuggestion(c.Request.Context(), userID, req.Query, req.MealType)
	if err != nil {
		mapCoachError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// GeneratePlan builds and persists a new weekly schedule.
// POST /api/ai/plan
func (h *CoachHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PlanGenerationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	plan, err := h.coachService.GeneratePlan(c.Request.Context(), userID, req.Prompt, int(req.TrainingDays))
	if err != nil {
		mapCoachError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
