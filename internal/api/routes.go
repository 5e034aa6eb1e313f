package api

import (
	"log/slog"
	"net/http"

	"github.com/Sudhikumaran/Protena-ai/internal/ratelimit"
	"github.com/Sudhikumaran/Protena-ai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Limiters bundles the two admission windows: a broad one for every API
// route and a tight one for the AI endpoints.
type Limiters struct {
	Global *ratelimit.Limiter
	AI     *ratelimit.Limiter
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger *slog.Logger,
	limiters Limiters,
	authService service.AuthService,
	athleteService service.AthleteService,
	coachService service.CoachService,
	workoutService service.WorkoutService,
) {
	authHandler := NewAuthHandler(authService)
	athleteHandler := NewAthleteHandler(athleteService)
	coachHandler := NewCoachHandler(coachService)
	workoutHandler := NewWorkoutHandler(workoutService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(SecurityHeadersMiddleware())
	router.Use(RequestLoggerMiddleware(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	if limiters.Global != nil {
		apiGroup.Use(RateLimitMiddleware(limiters.Global, "global"))
	}

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		athleteGroup := protected.Group("/athletes/me")
		{
			athleteGroup.POST("", athleteHandler.Onboard)
			athleteGroup.GET("/overview", athleteHandler.Overview)
			athleteGroup.GET("/daily", athleteHandler.Daily)
			athleteGroup.POST("/meals", athleteHandler.AddMeal)
			athleteGroup.POST("/meals/photo-url", athleteHandler.MealPhotoUploadURL)
			athleteGroup.GET("/meals/photo-url", athleteHandler.MealPhotoDownloadURL)
			athleteGroup.DELETE("/meals/photo", athleteHandler.DeleteMealPhoto)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/today", workoutHandler.Today)
			workoutGroup.POST("/:workoutId/complete", workoutHandler.Complete)
		}

		aiGroup := protected.Group("/ai")
		if limiters.AI != nil {
			aiGroup.Use(RateLimitMiddleware(limiters.AI, "ai"))
		}
		{
			aiGroup.GET("/coaching-brief", coachHandler.CoachingBrief)
			aiGroup.POST("/meal-suggestion", coachHandler.MealSuggestion)
			aiGroup.POST("/plan", coachHandler.GeneratePlan)
		}
	}
}
