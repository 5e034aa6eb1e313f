package api

import (
	"errors"
	"net/http"

	"github.com/Sudhikumaran/Protena-ai/internal/service"

	"github.com/gin-gonic/gin"
)

// AthleteHandler exposes the athlete document endpoints.
type AthleteHandler struct {
	athleteService service.AthleteService
}

func NewAthleteHandler(athleteService service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athleteService: athleteService}
}

// Onboard creates or rebuilds the athlete profile from the onboarding form.
// POST /api/athletes/me
func (h *AthleteHandler) Onboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req OnboardingRequest
	if !bindAndValidate(c, &req) {
		return
	}

	athlete, created, err := h.athleteService.Onboard(c.Request.Context(), userID, service.OnboardingInput{
		Name:              req.Name,
		Email:             req.Email,
		Age:               int(req.Age),
		WeightKg:          float64(req.Weight),
		HeightCm:          float64(req.Height),
		Goal:              req.Goal,
		Focus:             req.Focus,
		DietPreference:    req.DietPreference,
		TrainingFrequency: int(req.TrainingFrequency),
		BadHabits:         req.BadHabits,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not save athlete profile")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, athlete)
}

// Overview returns the full athlete document.
// GET /api/athletes/me/overview
func (h *AthleteHandler) Overview(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	athlete, err := h.athleteService.Overview(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAthleteNotFound) {
			abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	c.JSON(http.StatusOK, athlete)
}

// Daily serves the analytics history: ?all=true lists every scored day,
// otherwise ?day= selects one by id or date, defaulting to today.
// GET /api/athletes/me/daily
func (h *AthleteHandler) Daily(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if c.Query("all") == "true" {
		days, err := h.athleteService.AnalyticsDays(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrAthleteNotFound) {
				abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
				return
			}
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": days})
		return
	}

	dayID := c.Query("day")
	if dayID == "" {
		dayID = "today"
	}
	day, err := h.athleteService.AnalyticsDay(c.Request.Context(), userID, dayID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound):
			abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
		case errors.Is(err, service.ErrAnalyticsDayNotFound):
			abortWithError(c, http.StatusNotFound, "Analytics day not found")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}
	c.JSON(http.StatusOK, day)
}

// AddMeal logs a meal against the athlete.
// POST /api/athletes/me/meals
func (h *AthleteHandler) AddMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MealRequest
	if !bindAndValidate(c, &req) {
		return
	}

	athlete, err := h.athleteService.AddMeal(c.Request.Context(), userID, service.MealInput{
		Title:    req.Title,
		Calories: float64(req.Calories),
		Protein:  float64(req.Protein),
		MealType: req.MealType,
		Status:   req.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrAthleteNotFound) {
			abortWithError(c, http.StatusNotFound, "Athlete profile not found. Complete onboarding first.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not log meal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"meal":          athlete.MealLog[0],
		"mealLog":       athlete.MealLog,
		"analyticsDays": athlete.AnalyticsDays,
	})
}

// MealPhotoUploadURL issues a presigned upload slot for a meal photo.
// POST /api/athletes/me/meals/photo-url
func (h *AthleteHandler) MealPhotoUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MealPhotoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ticket, err := h.athleteService.MealPhotoUploadURL(c.Request.Context(), userID, req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			abortWithError(c, http.StatusBadRequest, "Only image uploads are supported")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not create upload URL")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// MealPhotoDownloadURL issues a presigned view URL for an uploaded photo.
// GET /api/athletes/me/meals/photo-url?key=...
func (h *AthleteHandler) MealPhotoDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Missing object key")
		return
	}

	downloadURL, err := h.athleteService.MealPhotoDownloadURL(c.Request.Context(), userID, objectKey)
	if err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, "Photo not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not create download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

// DeleteMealPhoto removes an uploaded photo.
// DELETE /api/athletes/me/meals/photo?key=...
func (h *AthleteHandler) DeleteMealPhoto(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Missing object key")
		return
	}

	if err := h.athleteService.DeleteMealPhoto(c.Request.Context(), userID, objectKey); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, "Photo not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not delete photo")
		return
	}
	c.Status(http.StatusNoContent)
}
