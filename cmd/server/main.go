package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink-backend/internal/assistant"
	"carelink-backend/internal/config"
	"carelink-backend/internal/database"
	"carelink-backend/internal/handlers"
	"carelink-backend/internal/middleware"
	"carelink-backend/internal/openai"
	"carelink-backend/internal/repository"
	"carelink-backend/internal/router"
	"carelink-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting CareLink Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Initialize Repositories ────
	conversationRepo := repository.NewConversationRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)
	organizationRepo := repository.NewOrganizationRepo(pool)
	doctorRepo := repository.NewDoctorRepo(pool)
	appointmentRepo := repository.NewAppointmentRepo(pool)

	// ──── Step 5: Initialize Assistant Gateway ────
	var clientOpts []openai.Option
	if cfg.OpenAIBaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	aiClient := openai.NewClient(cfg.OpenAIAPIKey, clientOpts...)

	fileExtractService := services.NewFileExtractService()
	assistantService := assistant.NewService(aiClient, assistant.DefaultRules(), fileExtractService, assistant.Options{
		ChatModel:   cfg.ChatModel,
		ImageModel:  cfg.ImageModel,
		SpeechModel: cfg.SpeechModel,
		SpeechVoice: cfg.SpeechVoice,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	log.Println("✓ Assistant gateway initialized")

	// ──── Initialize Middleware ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	quota := middleware.NewQuota(redisClient, cfg.AssistantRequestsPerMin, time.Minute)

	// ──── Initialize Handlers ────
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	chatHandler := handlers.NewChatHandler(conversationRepo, messageRepo)
	organizationHandler := handlers.NewOrganizationHandler(organizationRepo)
	doctorHandler := handlers.NewDoctorHandler(doctorRepo)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo, doctorRepo)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		quota,
		assistantHandler,
		chatHandler,
		organizationHandler,
		doctorHandler,
		appointmentHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ CareLink Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
