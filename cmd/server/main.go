package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sudhikumaran/Protena-ai/internal/ai"
	"github.com/Sudhikumaran/Protena-ai/internal/api"
	"github.com/Sudhikumaran/Protena-ai/internal/config"
	"github.com/Sudhikumaran/Protena-ai/internal/ratelimit"
	"github.com/Sudhikumaran/Protena-ai/internal/repository/mongo"
	"github.com/Sudhikumaran/Protena-ai/internal/service"
	"github.com/Sudhikumaran/Protena-ai/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Error("could not connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connected", "name", cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureAthleteIndexes(ctx, appDB.Collection("athletes"))
	}()

	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	userRepo := mongo.NewMongoUserRepository(appDB)
	athleteRepo := mongo.NewMongoAthleteRepository(appDB)

	completionClient := ai.NewClient(cfg.AI.APIURL, cfg.AI.Model, cfg.AI.APIKey, cfg.AI.Timeout, logger)
	if cfg.AI.APIKey == "" {
		logger.Warn("AI api key is not set, coaching endpoints will answer 503")
	}

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	athleteService := service.NewAthleteService(athleteRepo, fileStorage, logger)
	coachService := service.NewCoachService(athleteRepo, completionClient, cfg.AI.Temperature, logger)
	workoutService := service.NewWorkoutService(athleteRepo, logger)

	limiterStore := ratelimit.NewStore()
	limiters := api.Limiters{
		Global: limiterStore.NewLimiter("global", cfg.RateLimit.GlobalWindow, cfg.RateLimit.GlobalLimit),
		AI:     limiterStore.NewLimiter("ai", cfg.RateLimit.AIWindow, cfg.RateLimit.AILimit),
	}

	// Periodic sweep keeps the limiter map from growing with every client
	// key ever seen.
	scheduler := cron.New()
	sweepEvery := cfg.RateLimit.SweepEvery
	if sweepEvery <= 0 {
		sweepEvery = 5 * time.Minute
	}
	if _, err := scheduler.AddFunc("@every "+sweepEvery.String(), func() {
		if evicted := limiterStore.Sweep(); evicted > 0 {
			logger.Debug("rate limiter sweep", "evicted", evicted)
		}
	}); err != nil {
		logger.Error("failed to schedule limiter sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, logger, limiters, authService, athleteService, coachService, workoutService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}
