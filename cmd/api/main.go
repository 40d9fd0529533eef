package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-wellness-backend/config"
	_ "go-wellness-backend/docs" // Important for Swagger
	v1 "go-wellness-backend/internal/delivery/http/v1"
	"go-wellness-backend/internal/domain"
	"go-wellness-backend/internal/repository/postgres"
	"go-wellness-backend/internal/usecase"
	"go-wellness-backend/pkg/database"
	"go-wellness-backend/pkg/email/resend"
	"go-wellness-backend/pkg/i18n"
	"go-wellness-backend/pkg/logger"
	"go-wellness-backend/pkg/redis"
)

// @title           Wellness Practice Contact API
// @version         1.0
// @description     Contact form backend for a Shiatsu / Sophrology practice website.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting wellness backend", "port", cfg.Port)

	// 3. Setup Dictionaries
	dict, err := i18n.Load()
	if err != nil {
		logger.Log.Error("Failed to load dictionaries", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (rate limiting falls back to in-memory when absent)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 5. Setup Submission Archive (optional)
	var submissionRepo domain.SubmissionRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		submissionRepo = postgres.NewSubmissionRepository(dbPool)
	}

	// 6. Setup Email Sender
	sender := resend.New(resend.Config{
		APIKey:      cfg.ResendAPIKey,
		SenderEmail: cfg.ResendFromEmail,
		SenderName:  cfg.ResendFromName,
	})
	if !cfg.EmailConfigured() {
		logger.Log.Warn("Email dispatch not fully configured - contact form will be unavailable")
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, submissionRepo, dict, usecase.ContactConfig{
		FromEmail:         cfg.ResendFromEmail,
		FromName:          cfg.ResendFromName,
		PractitionerEmail: cfg.ContactEmailTo,
	})

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		SubmissionRepo: submissionRepo,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
